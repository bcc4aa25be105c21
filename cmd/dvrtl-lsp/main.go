// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"dvrtl/internal/lsp"
)

const lsName = "dvrtl" // Name identifier for the language server

var handler protocol.Handler

func main() {
	// Configure debug logging (1 = debug level, nil = default logger)
	commonlog.Configure(1, nil)

	dvrtlHandler := lsp.NewDvrtlHandler()

	// Wire up the handler with specific LSP method implementations
	handler = protocol.Handler{
		Initialize:                     dvrtlHandler.Initialize,
		Initialized:                    dvrtlHandler.Initialized,
		Shutdown:                       dvrtlHandler.Shutdown,
		SetTrace:                       dvrtlHandler.SetTrace,
		TextDocumentDidOpen:            dvrtlHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           dvrtlHandler.TextDocumentDidClose,
		TextDocumentDidChange:          dvrtlHandler.TextDocumentDidChange,
		TextDocumentCompletion:         dvrtlHandler.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: dvrtlHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting dvrtl LSP server...")

	// Serve over standard input/output, as most editors expect
	if err := s.RunStdio(); err != nil {
		log.Println("Error starting dvrtl LSP server:", err)
		os.Exit(1)
	}
}
