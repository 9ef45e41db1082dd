/*
main.go - chargectl entry point

PURPOSE:
  Command line front end of the charge validation engine. Serves the HTTP
  API or checks payload files offline.

COMMANDS:
  serve            Start the HTTP API with graceful shutdown
  check FILE...    Validate JSON or YAML charge payloads

ENVIRONMENT:
  See config/config.go. A .env file in the working directory is read when
  present; --env-file names a different one.

EXAMPLES:
  # Run the API on another port
  chargectl serve --addr :3000

  # Validate payload files as updates
  chargectl check --update fee.json fee.yaml

SEE ALSO:
  - api/server.go: Router configuration
  - rules/: The checks behind both commands
*/
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
