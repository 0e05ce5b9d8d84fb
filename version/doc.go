// Package version reports the flowreport build: release tag, VCS commit and
// build time. The values are stamped at link time and fall back to the VCS
// settings Go embeds in the binary:
//
//	go build -ldflags "-X github.com/kbukum/flowreport/version.Version=1.2.0" ./cmd/flowreport
//
// The CLI prints Info from the version subcommand and the HTTP server serves
// it at /version.
package version
