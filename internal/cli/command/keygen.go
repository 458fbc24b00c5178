package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/clipmesh-go/pkg/crypto/aead"
)

// KeygenCommand returns the keygen command.
func KeygenCommand() *cli.Command {
	return &cli.Command{
		Name:   "keygen",
		Usage:  "Print a new random secret_key",
		Action: keygenAction,
	}
}

func keygenAction(c *cli.Context) error {
	key, err := aead.GenerateKey()
	if err != nil {
		return fmt.Errorf("generate key: %w", err)
	}
	_, err = fmt.Fprintln(c.App.Writer, key)
	return err
}
