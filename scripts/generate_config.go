// generate_config writes a starter config/config.<env>.yaml for each
// environment named on the command line (default: dev).
package main

import (
	"fmt"
	"os"

	"github.com/NomadCrew/nomad-itinerary/config"
)

func main() {
	envs := os.Args[1:]
	if len(envs) == 0 {
		envs = []string{string(config.Development)}
	}

	if err := os.MkdirAll("config", 0o755); err != nil {
		fmt.Printf("Error creating config directory: %v\n", err)
		os.Exit(1)
	}

	for _, env := range envs {
		if err := config.CreateConfigTemplateForEnvironment("config", config.EnvType(env)); err != nil {
			fmt.Printf("Error generating config for %s: %v\n", env, err)
			os.Exit(1)
		}
		fmt.Printf("Generated config template for %s\n", env)
	}
}
