// Command visibility-mapper shows how field visibility decides what can be
// mapped to and from flat records, using the types of examples/cars.
//
//	visibility-mapper describe [-debug] [type...]
//	visibility-mapper decode <type> [text]
//	visibility-mapper roundtrip <type> [text]
//	visibility-mapper inspect <package pattern...>
//
// Global options -config, -reveal, -ignore-unknown, -strict, -format and
// -log override the configuration file and VMAPPER_* environment variables.
// A .env file in the working directory is loaded first.
package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/scott-cotton/cli"
)

func main() {
	_ = godotenv.Load()

	cli.MainContext(context.Background(), MainCommand())
}
