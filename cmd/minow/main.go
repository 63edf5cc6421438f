package main

import (
	"os"

	"github.com/minow/minow/pkg/minow"
	"github.com/minow/minow/pkg/oslink"
)

func main() {
	os.Exit(minow.Main(oslink.Get()))
}
