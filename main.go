package main

import "quadro-expedicao.com/quadro-expedicao/cmd"

func main() {
	cmd.Execute()
}
