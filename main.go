package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"auto_checkin_doc_generator/agenda"
	"auto_checkin_doc_generator/bot"
	"auto_checkin_doc_generator/config"
	"auto_checkin_doc_generator/notion"
	"auto_checkin_doc_generator/server"
	"auto_checkin_doc_generator/slackbot"
)

var verbose bool

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	configPath := flag.String("config", "config/config.json", "path to config.json")
	team := flag.String("team", "", "process only the named team")
	dryRun := flag.Bool("dry-run", false, "decide and log without creating pages or posting to Slack")
	serve := flag.Bool("serve", false, "start web server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides config.server_addr)")
	flag.BoolVar(&verbose, "v", false, "enable info logs")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	docs, err := notion.New(cfg.Base.NotionAPIToken, cfg.Base.NotionVersion, cfg.Base.DatabaseID, nil, verbose, log.Default())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	chat, err := slackbot.New(cfg.Base.SlackBotToken)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	drafter, err := buildDrafter(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	b, err := bot.New(cfg, docs, chat, drafter, *dryRun, verbose, log.Default())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Web server mode: the scheduler triggers runs over HTTP.
	if *serve {
		srv, err := server.New(b)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		listen := cfg.Base.ServerAddr
		if *addr != "" {
			listen = *addr
		}
		if listen == "" {
			listen = ":8080"
		}
		log.Printf("Starting web server on %s", listen)
		if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	ctx := context.Background()
	if *team != "" {
		err = b.RunTeamNamed(ctx, *team)
	} else {
		err = b.Run(ctx)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildDrafter(cfg config.Config) (bot.AgendaDrafter, error) {
	if cfg.Base.LLM == nil || cfg.Base.LLM.Provider == "" {
		return nil, nil
	}
	settings := &agenda.LLMSettings{
		Provider: cfg.Base.LLM.Provider,
		Model:    cfg.Base.LLM.Model,
		APIKey:   cfg.Base.LLM.APIKey,
		BaseURL:  cfg.Base.LLM.BaseURL,
	}
	var llm agenda.LLMClient
	switch cfg.Base.LLM.Provider {
	case "openai":
		client, err := agenda.NewOpenAILLMFromConfig(settings)
		if err != nil {
			return nil, err
		}
		llm = client
	case "deepseek":
		// DeepSeek exposes an OpenAI-compatible endpoint; base_url is mandatory.
		if settings.BaseURL == "" {
			return nil, fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		client, err := agenda.NewOpenAILLMFromConfig(settings)
		if err != nil {
			return nil, err
		}
		llm = client
	case "mock":
		llm = agenda.MockLLM{}
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.Base.LLM.Provider)
	}
	agent, err := agenda.NewAgent(llm)
	if err != nil {
		return nil, err
	}
	return agent, nil
}
