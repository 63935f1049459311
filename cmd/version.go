package cmd

// Version is set at build time with
// -ldflags "-X github.com/phanxgames/flurry/cmd.Version=1.2.3".
var Version = "dev"
