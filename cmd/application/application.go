// Package application defines what commands need from the hostlists CLI.
//
// Commands accept this interface rather than the concrete App so they can be
// tested against a Mock that points the pipeline at temporary directories:
//
//	mock := &application.Mock{
//	    PipelineFunc: func(opts ...hostlists.Option) (*hostlists.Pipeline, error) {
//	        return hostlists.New(append([]hostlists.Option{
//	            hostlists.WithSourceDir(dir),
//	        }, opts...)...)
//	    },
//	}
//	cmd := build.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/hostlists"
)

// Application provides the application interface that commands need.
// The App struct from cmd/hostlists/app implements it.
type Application interface {
	// Pipeline builds a pipeline from the loaded configuration.
	// Extra options are applied last and override the configuration.
	Pipeline(opts ...hostlists.Option) (*hostlists.Pipeline, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the requested output format, empty for auto.
	OutputFormat() string

	// Version information
	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
