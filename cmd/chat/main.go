// Portfolio CLI - command line client for the portfolio API
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Selvan2806/tamilselvan-portfolio/clients/go/portfolio"
)

const fallbackReply = "I apologize, but I'm having trouble responding right now. Please try again."

func main() {
	baseURL := os.Getenv("PORTFOLIO_API_URL")
	client := portfolio.NewClient(baseURL)

	cmd := "chat"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "chat":
		runChat(client)

	case "contact":
		runContact(client)

	case "health":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		resp, err := client.Health(ctx)
		if resp != nil {
			printJSON(resp)
		}
		exitOnError(err)

	case "help", "--help", "-h":
		usage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

// runChat is an interactive loop: each line of input becomes a user turn
// and the assistant's reply is printed as it streams.
func runChat(client *portfolio.Client) {
	conv := portfolio.NewConversation()
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("Chatting with the portfolio assistant. Ctrl-D to quit.")
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		conv.AddUser(input)

		fmt.Print("assistant> ")
		err := client.StreamChat(context.Background(), conv, func(delta string, _ portfolio.ChatMessage) {
			fmt.Print(delta)
		})
		if err != nil {
			// Surface one friendly line instead of a partial or empty reply.
			conv.SetAssistant(fallbackReply)
			conv.Finalize()
			fmt.Print(fallbackReply)
			if portfolio.IsRateLimited(err) {
				fmt.Print(" (rate limited)")
			}
		}
		fmt.Println()
	}
}

// runContact prompts for the form fields and submits them. The start time
// is recorded before the first prompt so an interactive submission passes
// the server's minimum fill time.
func runContact(client *portfolio.Client) {
	started := time.Now()
	reader := bufio.NewReader(os.Stdin)

	cr := portfolio.ContactRequest{
		Name:          prompt(reader, "Name"),
		Email:         prompt(reader, "Email"),
		Subject:       prompt(reader, "Subject"),
		Message:       prompt(reader, "Message"),
		FormStartedAt: started,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resp, err := client.SubmitContact(ctx, cr)
	exitOnError(err)
	fmt.Println(resp.Message)
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Printf("%s: ", label)
	line, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println()
		os.Exit(1)
	}
	return strings.TrimSpace(line)
}

func usage() {
	fmt.Println(`Portfolio CLI - client for the portfolio API

Usage: chat [command]

Commands:
  chat       Interactive chat with the portfolio assistant (default)
  contact    Submit the contact form
  health     Check API health

Environment:
  PORTFOLIO_API_URL   API base URL (default: http://localhost:8080)`)
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func printJSON(v interface{}) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(data))
}
