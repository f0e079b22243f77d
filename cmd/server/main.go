package main

import (
	"context"
	"log"

	"github.com/anonto42/snapgram/backend/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}
