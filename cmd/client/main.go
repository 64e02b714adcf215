package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/atinyakov/feather/internal/client"
	"github.com/atinyakov/feather/internal/models"
)

var (
	version   string
	buildDate string
)

// main parses command-line flags and dispatches to the question or register commands.
func main() {
	var (
		cmd      string
		baseURL  string
		caFile   string
		username string
		email    string
		password string
		showVer  bool
	)

	flag.StringVar(&cmd, "cmd", "register", "command: question | register")
	flag.StringVar(&baseURL, "url", "http://localhost:3389", "server base URL")
	flag.StringVar(&caFile, "ca", "", "path to CA cert for https servers")
	flag.StringVar(&username, "username", "", "username for registration")
	flag.StringVar(&email, "email", "", "email for registration")
	flag.StringVar(&password, "password", "", "credential for registration")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("Feather Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	httpClient, err := client.NewHTTPClient(caFile)
	if err != nil {
		log.Fatal(err)
	}
	api := client.New(baseURL, httpClient)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	switch cmd {
	case "question":
		q, err := api.FetchQuestion(ctx)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("#%d %s\n", q.Index, q.Text)
	case "register":
		if username == "" || email == "" || password == "" {
			log.Fatal("please provide -username, -email and -password")
		}
		q, err := api.FetchQuestion(ctx)
		if err != nil {
			log.Fatal(err)
		}
		answer, err := client.PromptAnswer(os.Stdin, os.Stdout, q)
		if err != nil {
			log.Fatal(err)
		}
		u, err := api.Register(ctx, models.RegisterRequest{
			Username:      username,
			Email:         email,
			Password:      password,
			QuestionIndex: &q.Index,
			Answer:        answer,
		})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("✅ Registered %s <%s> with id %d (verified: %v)\n", u.Username, u.Email, u.ID, u.Verified)
	default:
		log.Fatalf("unknown command: %s", cmd)
	}
}
