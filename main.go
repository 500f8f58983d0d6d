package main

import (
	"os"

	"github.com/huahuayu/etherscan-code-exporter/cmd"
)

var version = "dev"

func main() {
	os.Exit(cmd.Execute(version))
}
