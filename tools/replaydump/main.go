package main

import (
	"fmt"
	"os"
	"time"

	"crawler-server/internal/infrastructure/storage"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	session, err := storage.LoadFile(os.Args[1])
	if err != nil {
		fmt.Printf("Invalid replay: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Seed:     %d\n", session.Seed)
	fmt.Printf("Recorded: %s\n", time.Unix(session.Timestamp, 0).UTC().Format(time.RFC3339))
	fmt.Printf("Depth:    %d\n", session.FinalDepth)
	fmt.Printf("Actions:  %d\n", len(session.Actions))

	if len(os.Args) > 2 && os.Args[2] == "-v" {
		for i, act := range session.Actions {
			name := act.Action.String()
			if act.Admin != "" {
				name = "ADMIN_" + act.Admin
			}
			fmt.Printf("%5d  turn %-5d %-16s %s\n", i, act.Turn, name, act.Payload)
		}
	}
}

func printHelp() {
	fmt.Println("Replay inspector")
	fmt.Println("Usage:")
	fmt.Println("  replaydump <file.crrp>       Print replay header")
	fmt.Println("  replaydump <file.crrp> -v    Print header and every action")
}
