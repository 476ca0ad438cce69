package main

import (
	"github.com/brixmarket/brix/internal/cli"
	"github.com/brixmarket/brix/internal/common/logtrace"
)

func init() {
	logtrace.InitLogger()
}

func main() {
	cli.Execute()
}
