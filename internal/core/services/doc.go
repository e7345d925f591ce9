// Package services contains the core application services implementing
// the driving ports. The Engine runs the ingest and retrieval pipeline;
// Conversations exposes the chat log; the Watcher auto-ingests files
// dropped into the uploads directory.
package services
