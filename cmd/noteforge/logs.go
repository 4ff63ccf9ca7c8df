package main

import (
	"io"
	"log"
)

// logs manipulates the standard logger, so that anything logged while
// serving a request lands in its response.
var logs logSettings

type logSettings struct{}

// restore snapshots the standard logger settings, returning a function that
// puts them back.
func (ls logSettings) restore() func() {
	out, flags, prefix := log.Writer(), log.Flags(), log.Prefix()
	return func() {
		log.SetOutput(out)
		log.SetFlags(flags)
		log.SetPrefix(prefix)
	}
}

func (ls logSettings) setOutput(w io.Writer) logSettings {
	log.SetOutput(w)
	return ls
}

func (ls logSettings) setFlags(flags int) logSettings {
	log.SetFlags(flags)
	return ls
}

func (ls logSettings) setPrefix(prefix string) logSettings {
	log.SetPrefix(prefix)
	return ls
}
