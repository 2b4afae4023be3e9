/*
Command ccgsrl parses sentences with a CCG and re-ranks the parses under
attachment and supertag constraints.

	$ ccgsrl parse -in corpus.yaml -lex lexicon.yaml
	$ ccgsrl reparse -in corpus.yaml -constraints constraints.yaml
	$ ccgsrl repl -lex lexicon.yaml
	$ ccgsrl serve -lex lexicon.yaml -addr :8000

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gonuts/commander"
	"github.com/npillmayer/ccgsrl/app"
	"github.com/npillmayer/ccgsrl/webapi"
)

var cmd = &commander.Command{
	UsageLine: os.Args[0] + " parse|reparse|repl|serve",
	Short:     "constrained CCG parsing and re-ranking",
}

func init() {
	cmd.Subcommands = append(app.AllCommands().Subcommands, webapi.AllCommands().Subcommands...)
}

func exit(err error) {
	fmt.Printf("**error**: %v\n", err)
	os.Exit(1)
}

func main() {
	if err := cmd.Dispatch(context.Background(), os.Args[1:]); err != nil {
		exit(err)
	}
}
