// Command hash-password prints an argon2id hash suitable for VISION_AUTH_PASSWORD_HASH.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/douglasalbuquerque/vision-api/pkg/config"
	"github.com/douglasalbuquerque/vision-api/pkg/logger"
	"github.com/douglasalbuquerque/vision-api/pkg/security"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "hash-password", Format: logger.FormatConsole, Output: os.Stderr})
	ctx := context.Background()

	_ = godotenv.Load()

	password := flag.String("password", "", "password to hash; read from stdin when empty")
	flag.Parse()

	var params config.PasswordConfig
	if err := envconfig.Process(config.EnvPrefix, &params); err != nil {
		logg.Error(ctx, "failed to load argon2 parameters", err)
		os.Exit(1)
	}

	value := *password
	if value == "" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			logg.Error(ctx, "failed to read password from stdin", err)
			os.Exit(1)
		}
		value = strings.TrimRight(line, "\r\n")
	}

	hash, err := security.HashPassword(value, params)
	if err != nil {
		logg.Error(ctx, "failed to hash password", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
