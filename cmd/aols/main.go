// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"abstractobject/internal/lsp"
)

const lsName = "aols"

var (
	version = "0.0.1"
	handler protocol.Handler
)

func main() {
	commonlog.Configure(1, nil)

	traceHandler := lsp.NewTraceHandler()

	handler = protocol.Handler{
		Initialize:            traceHandler.Initialize,
		Initialized:           traceHandler.Initialized,
		Shutdown:              traceHandler.Shutdown,
		SetTrace:              traceHandler.SetTrace,
		TextDocumentDidOpen:   traceHandler.TextDocumentDidOpen,
		TextDocumentDidClose:  traceHandler.TextDocumentDidClose,
		TextDocumentDidChange: traceHandler.TextDocumentDidChange,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting abstract object trace LSP server...")

	if err := s.RunStdio(); err != nil {
		log.Println("Error starting aols server:", err)
		os.Exit(1)
	}
}
