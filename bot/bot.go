package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"auto_checkin_doc_generator/agenda"
	"auto_checkin_doc_generator/checkin"
	"auto_checkin_doc_generator/config"
	"auto_checkin_doc_generator/notion"
)

// DocumentService is the document-database collaborator.
type DocumentService interface {
	QueryLatest(ctx context.Context, teamName string) (*checkin.LatestRecord, error)
	CreatePage(ctx context.Context, req *checkin.NewRecordRequest, userIDs map[string]string, children []notion.Block) (string, error)
	ListUsers(ctx context.Context) (map[string]string, error)
}

// ChatService is the chat collaborator.
type ChatService interface {
	Notify(ctx context.Context, channelID, text string) error
}

// AgendaDrafter drafts an optional agenda body for new pages.
type AgendaDrafter interface {
	Generate(ctx context.Context, spec agenda.Spec) (agenda.Draft, error)
}

// Bot wires the pure check-in engine to the Notion and Slack collaborators
// and processes teams one at a time.
type Bot struct {
	cfg     config.Config
	docs    DocumentService
	chat    ChatService
	drafter AgendaDrafter
	synth   *checkin.Synthesizer
	dryRun  bool
	verbose bool
	logger  *log.Logger
	now     func() time.Time
}

// New builds a Bot from validated config. drafter may be nil to disable
// agenda drafting.
func New(cfg config.Config, docs DocumentService, chat ChatService, drafter AgendaDrafter, dryRun, verbose bool, logger *log.Logger) (*Bot, error) {
	if docs == nil || chat == nil {
		return nil, errors.New("document and chat collaborators are required")
	}
	if logger == nil {
		logger = log.Default()
	}
	synth, err := checkin.NewSynthesizer(checkin.Options{
		ThresholdDays:        cfg.Base.DayThreshold,
		CarryForwardPeriod:   cfg.Base.CarryForward(),
		BootstrapFirstRecord: cfg.Base.BootstrapFirstRecord,
		SequenceBase:         cfg.Base.SequenceBase,
	})
	if err != nil {
		return nil, err
	}
	return &Bot{
		cfg:     cfg,
		docs:    docs,
		chat:    chat,
		drafter: drafter,
		synth:   synth,
		dryRun:  dryRun,
		verbose: verbose,
		logger:  logger,
		now:     time.Now,
	}, nil
}

func (b *Bot) infof(format string, args ...interface{}) {
	if !b.verbose {
		return
	}
	b.logger.Printf("[INFO] "+format, args...)
}

// Run processes every configured team. A team's failure is logged and does
// not stop the remaining teams; the joined error is returned at the end.
func (b *Bot) Run(ctx context.Context) error {
	runID := uuid.NewString()
	b.infof("run %s: processing %d teams", runID, len(b.cfg.Teams))

	var errs []error
	for _, team := range b.cfg.Teams {
		if err := b.RunTeam(ctx, team); err != nil {
			b.logger.Printf("run %s: team %s: %v", runID, team.TeamName, err)
			errs = append(errs, fmt.Errorf("team %s: %w", team.TeamName, err))
		}
	}
	return errors.Join(errs...)
}

// RunTeamNamed runs a single team looked up by name.
func (b *Bot) RunTeamNamed(ctx context.Context, name string) error {
	for _, team := range b.cfg.Teams {
		if team.TeamName == name {
			return b.RunTeam(ctx, team)
		}
	}
	return fmt.Errorf("no team named %q in config", name)
}

// RunTeam fetches the team's latest check-in page, decides whether a new one
// is due, and either creates it and announces the link or announces why
// nothing was created.
func (b *Bot) RunTeam(ctx context.Context, team config.Team) error {
	tc := checkin.TeamConfig{
		TeamName:   team.TeamName,
		BaseTitle:  team.BaseTitle,
		Host:       team.Host,
		Attendees:  team.Participation,
		Exclusions: team.Blacklist,
		Channel:    team.ChannelID,
	}

	latest, err := b.docs.QueryLatest(ctx, team.TeamName)
	if err != nil {
		return fmt.Errorf("query latest check-in: %w", err)
	}

	now := b.now()
	decision := checkin.Decide(latest, b.cfg.Base.DayThreshold, now)
	outcome, err := b.synth.Synthesize(decision, tc, now)
	if err != nil {
		return err
	}

	if outcome.Request == nil {
		msg := checkin.FormatNotification(outcome, tc, "")
		if b.dryRun {
			b.infof("dry-run: team %s: would notify %s: %s", team.TeamName, team.ChannelID, msg)
			return nil
		}
		return b.chat.Notify(ctx, team.ChannelID, msg)
	}

	req := outcome.Request
	if b.dryRun {
		b.infof("dry-run: team %s: would create %q (scribe %s) and notify %s",
			team.TeamName, req.Title, req.Scribe, team.ChannelID)
		return nil
	}

	userIDs, err := b.docs.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	var children []notion.Block
	if b.drafter != nil && team.AgendaTopic != "" {
		draft, err := b.drafter.Generate(ctx, agenda.Spec{
			Topic:    team.AgendaTopic,
			TeamName: team.TeamName,
			Date:     req.ScheduledDate,
			Index:    req.SequenceIndex,
		})
		if err != nil {
			// Agenda is best-effort; the page is still created without a body.
			b.logger.Printf("team %s: agenda draft failed, creating page without agenda: %v", team.TeamName, err)
		} else {
			children = agenda.MarkdownToBlocks(draft.Markdown)
		}
	}

	pageURL, err := b.docs.CreatePage(ctx, req, userIDs, children)
	if err != nil {
		return fmt.Errorf("create check-in page: %w", err)
	}
	b.infof("team %s: created %q -> %s", team.TeamName, req.Title, pageURL)

	return b.chat.Notify(ctx, team.ChannelID, checkin.FormatNotification(outcome, tc, pageURL))
}
