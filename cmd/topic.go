package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/MStrecke/depotauswertung/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "zeigt die eingebaute Dokumentation" }
func (*topicCmd) Usage() string {
	return `dpa topic [<thema> ...]

  Zeigt die Dokumentation zu einem Thema. Ohne Argument wird die
  Themenübersicht angezeigt, '*' zeigt alle Themen.

`
}

func (*topicCmd) SetFlags(f *flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{"readme"}
	}

	var b strings.Builder
	for _, topic := range topics {
		content, err := docs.Topic(topic)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
