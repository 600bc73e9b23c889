// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"dialogscript/internal/lsp"
)

const lsName = "dialogscript"

var (
	version = "0.0.1"
	handler protocol.Handler
)

func main() {
	commonlog.Configure(1, nil)

	dialogHandler := lsp.NewDialogHandler()

	handler = protocol.Handler{
		Initialize:                 dialogHandler.Initialize,
		Initialized:                dialogHandler.Initialized,
		Shutdown:                   dialogHandler.Shutdown,
		TextDocumentDidOpen:        dialogHandler.TextDocumentDidOpen,
		TextDocumentDidClose:       dialogHandler.TextDocumentDidClose,
		TextDocumentDidChange:      dialogHandler.TextDocumentDidChange,
		TextDocumentCompletion:     dialogHandler.TextDocumentCompletion,
		TextDocumentDocumentSymbol: dialogHandler.TextDocumentDocumentSymbol,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting dialogscript LSP server...")

	if err := s.RunStdio(); err != nil {
		log.Println("Error starting dialogscript LSP server:", err)
		os.Exit(1)
	}
}
