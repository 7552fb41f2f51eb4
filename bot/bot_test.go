package bot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auto_checkin_doc_generator/agenda"
	"auto_checkin_doc_generator/checkin"
	"auto_checkin_doc_generator/config"
	"auto_checkin_doc_generator/notion"
)

// --- Mocks ---

type mockDocs struct {
	latest      map[string]*checkin.LatestRecord
	queryErr    error
	users       map[string]string
	listErr     error
	createErr   error
	createdURL  string
	created     []*checkin.NewRecordRequest
	createdKids [][]notion.Block
}

func (m *mockDocs) QueryLatest(_ context.Context, teamName string) (*checkin.LatestRecord, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	return m.latest[teamName], nil
}

func (m *mockDocs) CreatePage(_ context.Context, req *checkin.NewRecordRequest, _ map[string]string, children []notion.Block) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	m.created = append(m.created, req)
	m.createdKids = append(m.createdKids, children)
	return m.createdURL, nil
}

func (m *mockDocs) ListUsers(context.Context) (map[string]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if m.users != nil {
		return m.users, nil
	}
	return map[string]string{}, nil
}

type mockChat struct {
	notifyErr error
	channels  []string
	messages  []string
}

func (m *mockChat) Notify(_ context.Context, channelID, text string) error {
	if m.notifyErr != nil {
		return m.notifyErr
	}
	m.channels = append(m.channels, channelID)
	m.messages = append(m.messages, text)
	return nil
}

type mockDrafter struct {
	markdown string
	err      error
}

func (m *mockDrafter) Generate(context.Context, agenda.Spec) (agenda.Draft, error) {
	if m.err != nil {
		return agenda.Draft{}, m.err
	}
	return agenda.Draft{Markdown: m.markdown}, nil
}

// --- Fixtures ---

var testNow = time.Date(2024, 6, 13, 9, 0, 0, 0, time.UTC)

func testConfig(teams ...config.Team) config.Config {
	return config.Config{
		Base: config.Base{
			SlackBotToken:  "xoxb",
			NotionAPIToken: "secret",
			DatabaseID:     "db-1",
			NotionVersion:  "2022-06-28",
			DayThreshold:   7,
		},
		Teams: teams,
	}
}

func infraTeam() config.Team {
	return config.Team{
		ChannelID:     "C123",
		TeamName:      "infra",
		BaseTitle:     "Team Sync #",
		Host:          "H",
		Participation: []string{"H", "A", "B"},
	}
}

func staleRecord() *checkin.LatestRecord {
	return &checkin.LatestRecord{
		CreatedAt:   testNow.AddDate(0, 0, -10),
		Title:       "[240603] Team Sync #12",
		PeriodLabel: "2024년 2분기",
		URL:         "https://www.notion.so/240603-Team-Sync-12",
	}
}

func newTestBot(t *testing.T, cfg config.Config, docs *mockDocs, chat *mockChat, drafter AgendaDrafter) *Bot {
	t.Helper()
	b, err := New(cfg, docs, chat, drafter, false, false, nil)
	require.NoError(t, err)
	b.now = func() time.Time { return testNow }
	return b
}

// --- Tests ---

func TestRunTeamCreatesNextRecord(t *testing.T) {
	docs := &mockDocs{
		latest:     map[string]*checkin.LatestRecord{"infra": staleRecord()},
		users:      map[string]string{"H": "uid-h", "A": "uid-a", "B": "uid-b"},
		createdURL: "https://www.notion.so/240610-Team-Sync-13",
	}
	chat := &mockChat{}
	b := newTestBot(t, testConfig(infraTeam()), docs, chat, nil)

	require.NoError(t, b.RunTeam(context.Background(), infraTeam()))

	require.Len(t, docs.created, 1)
	req := docs.created[0]
	assert.Equal(t, "[240610] Team Sync #13", req.Title)
	assert.Equal(t, "2024년 2분기", req.PeriodLabel)
	assert.Contains(t, []string{"A", "B"}, req.Scribe)

	require.Len(t, chat.messages, 1)
	assert.Equal(t, "C123", chat.channels[0])
	assert.Contains(t, chat.messages[0], docs.createdURL)
}

func TestRunTeamSkipsRecentRecord(t *testing.T) {
	recent := staleRecord()
	recent.CreatedAt = testNow.AddDate(0, 0, -3)
	docs := &mockDocs{latest: map[string]*checkin.LatestRecord{"infra": recent}}
	chat := &mockChat{}
	b := newTestBot(t, testConfig(infraTeam()), docs, chat, nil)

	require.NoError(t, b.RunTeam(context.Background(), infraTeam()))

	assert.Empty(t, docs.created)
	require.Len(t, chat.messages, 1)
	assert.Contains(t, chat.messages[0], "별도로 생성되지 않았습니다")
	assert.Contains(t, chat.messages[0], recent.URL)
}

func TestRunTeamNoPriorRecord(t *testing.T) {
	docs := &mockDocs{}
	chat := &mockChat{}
	b := newTestBot(t, testConfig(infraTeam()), docs, chat, nil)

	require.NoError(t, b.RunTeam(context.Background(), infraTeam()))

	assert.Empty(t, docs.created)
	require.Len(t, chat.messages, 1)
	assert.Contains(t, chat.messages[0], "수동으로 만들어주세요")
}

func TestRunTeamScribeFailureCreatesNothing(t *testing.T) {
	team := infraTeam()
	team.Participation = []string{"H", "A"}
	team.Blacklist = []string{"A"}
	docs := &mockDocs{latest: map[string]*checkin.LatestRecord{"infra": staleRecord()}}
	chat := &mockChat{}
	b := newTestBot(t, testConfig(team), docs, chat, nil)

	err := b.RunTeam(context.Background(), team)
	require.Error(t, err)
	var noScribe *checkin.NoEligibleScribeError
	assert.True(t, errors.As(err, &noScribe))
	assert.Empty(t, docs.created)
	assert.Empty(t, chat.messages)
}

func TestRunTeamMalformedPriorTitle(t *testing.T) {
	prior := staleRecord()
	prior.Title = "not a check-in title"
	docs := &mockDocs{latest: map[string]*checkin.LatestRecord{"infra": prior}}
	chat := &mockChat{}
	b := newTestBot(t, testConfig(infraTeam()), docs, chat, nil)

	err := b.RunTeam(context.Background(), infraTeam())
	require.Error(t, err)
	var malformed *checkin.MalformedTitleError
	assert.True(t, errors.As(err, &malformed))
	assert.Empty(t, docs.created)
	assert.Empty(t, chat.messages)
}

func TestRunTeamAttachesAgenda(t *testing.T) {
	team := infraTeam()
	team.AgendaTopic = "2분기 OKR"
	docs := &mockDocs{
		latest:     map[string]*checkin.LatestRecord{"infra": staleRecord()},
		users:      map[string]string{"H": "uid-h", "A": "uid-a", "B": "uid-b"},
		createdURL: "https://www.notion.so/new",
	}
	chat := &mockChat{}
	drafter := &mockDrafter{markdown: "## 논의 사항\n\n- 항목\n"}
	b := newTestBot(t, testConfig(team), docs, chat, drafter)

	require.NoError(t, b.RunTeam(context.Background(), team))

	require.Len(t, docs.createdKids, 1)
	assert.NotEmpty(t, docs.createdKids[0])
}

func TestRunTeamAgendaFailureIsNonFatal(t *testing.T) {
	team := infraTeam()
	team.AgendaTopic = "2분기 OKR"
	docs := &mockDocs{
		latest:     map[string]*checkin.LatestRecord{"infra": staleRecord()},
		users:      map[string]string{"H": "uid-h", "A": "uid-a", "B": "uid-b"},
		createdURL: "https://www.notion.so/new",
	}
	chat := &mockChat{}
	drafter := &mockDrafter{err: errors.New("model down")}
	b := newTestBot(t, testConfig(team), docs, chat, drafter)

	require.NoError(t, b.RunTeam(context.Background(), team))

	require.Len(t, docs.created, 1)
	assert.Empty(t, docs.createdKids[0])
	require.Len(t, chat.messages, 1)
}

func TestRunIsolatesTeamFailures(t *testing.T) {
	broken := infraTeam()
	broken.TeamName = "broken"
	brokenPrior := staleRecord()
	brokenPrior.Title = "garbage"

	healthy := infraTeam()

	docs := &mockDocs{
		latest: map[string]*checkin.LatestRecord{
			"broken": brokenPrior,
			"infra":  staleRecord(),
		},
		users:      map[string]string{"H": "uid-h", "A": "uid-a", "B": "uid-b"},
		createdURL: "https://www.notion.so/new",
	}
	chat := &mockChat{}
	b := newTestBot(t, testConfig(broken, healthy), docs, chat, nil)

	err := b.Run(context.Background())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "broken"))

	// The healthy team was still processed.
	require.Len(t, docs.created, 1)
	assert.Equal(t, "[240610] Team Sync #13", docs.created[0].Title)
	require.Len(t, chat.messages, 1)
}

func TestRunTeamNamed(t *testing.T) {
	docs := &mockDocs{latest: map[string]*checkin.LatestRecord{"infra": staleRecord()},
		users: map[string]string{"H": "uid-h", "A": "uid-a", "B": "uid-b"}, createdURL: "https://www.notion.so/new"}
	chat := &mockChat{}
	b := newTestBot(t, testConfig(infraTeam()), docs, chat, nil)

	require.Error(t, b.RunTeamNamed(context.Background(), "absent"))
	require.NoError(t, b.RunTeamNamed(context.Background(), "infra"))
	assert.Len(t, docs.created, 1)
}

func TestDryRunPerformsNoSideEffects(t *testing.T) {
	docs := &mockDocs{latest: map[string]*checkin.LatestRecord{"infra": staleRecord()}}
	chat := &mockChat{}
	b, err := New(testConfig(infraTeam()), docs, chat, nil, true, false, nil)
	require.NoError(t, err)
	b.now = func() time.Time { return testNow }

	require.NoError(t, b.RunTeam(context.Background(), infraTeam()))
	assert.Empty(t, docs.created)
	assert.Empty(t, chat.messages)
}

func TestRunTeamQueryErrorPropagates(t *testing.T) {
	docs := &mockDocs{queryErr: errors.New("notion down")}
	chat := &mockChat{}
	b := newTestBot(t, testConfig(infraTeam()), docs, chat, nil)

	err := b.RunTeam(context.Background(), infraTeam())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notion down")
	assert.Empty(t, chat.messages)
}
