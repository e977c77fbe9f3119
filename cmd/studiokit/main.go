package main

import (
	"github.com/studiokit/studiokit/internal/cli"
	"github.com/studiokit/studiokit/internal/common/logtrace"
)

func main() {
	logtrace.InitLogger()
	cli.Execute()
}
