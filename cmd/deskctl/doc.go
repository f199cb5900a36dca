// Package main is deskctl, a command line client for a running webdesk server.
//
//	deskctl register ./apps/calc/app.yaml
//	deskctl launch calc
//	deskctl open calc --width 640 --height 480
//	deskctl maximize 1
//	deskctl --server http://desk.local:8000 windows
//
// The server URL defaults to $WEBDESK_URL, then http://localhost:8000.
package main
