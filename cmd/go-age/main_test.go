package main

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

func TestParseFlags_Defaults(t *testing.T) {
	opts := parseFlags(flag.NewFlagSet("test", flag.ContinueOnError), nil)

	assert.False(t, opts.version)
	assert.False(t, opts.debug)
	assert.False(t, opts.serve)
	assert.Equal(t, config.DefaultPort, opts.port)
	assert.Empty(t, opts.vcard)
}

func TestParseFlags_Serve(t *testing.T) {
	opts := parseFlags(flag.NewFlagSet("test", flag.ContinueOnError),
		[]string{"-serve", "-port", "9000", "-debug", "-vcard", "me.vcf"})

	assert.True(t, opts.serve)
	assert.True(t, opts.debug)
	assert.Equal(t, "9000", opts.port)
	assert.Equal(t, "me.vcf", opts.vcard)
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    options
		wantErr bool
	}{
		{"Desktop", options{}, false},
		{"Desktop with card", options{vcard: "me.vcf"}, false},
		{"Serve", options{serve: true, port: "9000"}, false},
		{"Serve with card", options{serve: true, port: "9000", vcard: "me.vcf"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.validate()
			if tt.wantErr {
				assert.EqualError(t, err, config.ErrVCardServe)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRun_RejectsVCardWithServe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := run(ctx, options{serve: true, port: "9000", vcard: "me.vcf"})
	assert.EqualError(t, err, config.ErrVCardServe)
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	printVersion(&buf)

	assert.Contains(t, buf.String(), config.AppName)
	assert.Contains(t, buf.String(), config.Version)
}

func TestImportVCard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ada.vcf")
	card := "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Ada\r\nBDAY:19901231\r\nEND:VCARD\r\n"
	require.NoError(t, os.WriteFile(path, []byte(card), config.FilePermUserRW))

	ctrl := engine.NewController(nil)
	require.NoError(t, importVCard(ctrl, path))
	assert.Equal(t, "1990", ctrl.Input().Years.Value())

	err := importVCard(ctrl, filepath.Join(t.TempDir(), "missing.vcf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrVCardOpen)
}
