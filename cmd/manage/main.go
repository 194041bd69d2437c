// Command manage административная консоль сайта: manage create-user, manage migrate.
package main

import (
	"os"

	"github.com/magabrotheeeer/nutriede/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
