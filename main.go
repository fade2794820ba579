// chatwidget is a terminal chat widget for a remote chat-reply service.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/linanwx/chatwidget/cmd"
)

func main() {
	// A .env in the working directory may carry CHATWIDGET_* overrides.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, ".env error:", err)
	}
	cmd.Execute()
}
