package main

import (
	"fmt"

	"voicechess/ui"
)

func main() {
	if err := ui.RunVoiceChess(); err != nil {
		fmt.Println(err)
	}
}
