// main.go
//
// Entry point; CLI handling lives in the Cobra commands under cmd/

package main

import (
	"github.com/NourIslamAoudia/Simulation-of-queues-MM1-GM1-MG1/cmd"
)

func main() {
	cmd.Execute()
}
