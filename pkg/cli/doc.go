// Package cli implements the apiman command-line interface.
//
// # Commands
//
// markdown: print the whole reference as Markdown
//
//	apiman markdown api.yaml text.yaml > api.md
//	apiman markdown -title Tomo -lang tomo < api.yaml
//
// man: write one page per entry and one aggregate page per type
//
//	apiman man -dir man/man3 api.yaml
//	apiman man -watch -metrics-file /var/lib/node_exporter/apiman.prom api.yaml
//
// Only pages whose body changed are rewritten; each write prints
// "updated <path>". With -watch the inputs are reloaded and the pages
// regenerated whenever an input file is saved.
//
// serve: live preview over HTTP
//
//	apiman serve -addr :8080 api.yaml
//
// diff: compare two descriptions, exiting non-zero on breaking changes
//
//	apiman diff -format json old.yaml new.yaml
//
// Settings not given as flags come from APIMAN_* environment variables, see
// package config. Logs go to stderr.
package cli
