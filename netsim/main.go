// Command netsim runs and inspects event-driven network simulations.
package main

import "github.com/sarchlab/netsim/netsim/cmd"

func main() {
	cmd.Execute()
}
