package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionPrintsVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestRemovedCommandsAreUnknown(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "usage")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command \"usage\"")
}

func TestAgentsAddRequiresIDFlag(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "agents", "add", "--name", "Helper")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"id\" not set")
}

func TestAgentsAddThenListShowsAgent(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home,
		"agents", "add",
		"--id", "helper",
		"--name", "Helper",
		"--instructions", "Be brief.",
		"--max-history-turns", "3",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Saved agent helper (gemini-2.0-flash)")
	assert.FileExists(t, filepath.Join(home, ".synapse", "agents", "helper.toml"))

	stdout, _, err = executeCLI(t, home, "agents", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Synapse Nodes")
	assert.Contains(t, stdout, "agents: 1")
	assert.Contains(t, stdout, "Helper (helper)")
	assert.Contains(t, stdout, "api_communicator")
}

func TestAgentsAddRejectsDuplicateUnlessReplace(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAgentFixture(home, "helper", "Helper"))

	_, _, err := executeCLI(t, home, "agents", "add", "--id", "helper", "--name", "Other")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "agent definition already exists")

	_, _, err = executeCLI(t, home, "agents", "add", "--id", "helper", "--name", "Other", "--replace")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "agents", "list", "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, "\"Name\": \"Other\"")
}

func TestAgentsAddOnFreshHome(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "agents", "add", "--id", "helper", "--name", "Helper")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Saved agent helper")
	assert.FileExists(t, filepath.Join(home, ".synapse", "agents", "helper.toml"))
}

func TestAgentsAddRequiresNameFlag(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "agents", "add", "--id", "helper")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"name\" not set")
}

func TestAgentsAddRejectsInvalidParameters(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "agents", "add", "--id", "hot", "--name", "Hot", "--temperature", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "temperature")
}

func TestAgentsListWithoutAgentsDirectory(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "agents", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No agent definitions found.")
}

func TestAgentsListJSONOutput(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAgentFixture(home, "helper", "Helper"))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".synapse", "agents", "broken.json"), []byte("{"), 0o600))

	stdout, _, err := executeCLI(t, home, "agents", "list", "--json")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(stdout)))

	var payload agentsListOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	require.Len(t, payload.Agents, 1)
	assert.Equal(t, "helper", string(payload.Agents[0].ID))
	assert.Equal(t, []string{"api_communicator", "inter_agent_formatter"}, payload.Builtins)
	assert.Len(t, payload.Skipped, 1)
}

func TestSendToAgentPrintsGeneratedText(t *testing.T) {
	server := newGeminiServer(t, "pong", 0)
	home := t.TempDir()
	require.NoError(t, writeAgentFixture(home, "helper", "Helper"))

	stdout, _, err := executeCLI(t, home, "send", "--to", "helper", "--content", "ping", "--plain")
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &record))
	assert.Equal(t, true, record["success"])
	assert.Equal(t, "pong", record["generated_text"])
	assert.EqualValues(t, 1, server.calls.Load())
}

func TestSendWithoutAPIKeyStoresFailure(t *testing.T) {
	server := newGeminiServer(t, "pong", 0)
	home := t.TempDir()
	require.NoError(t, writeAgentFixture(home, "helper", "Helper"))
	t.Setenv("GEMINI_API_KEY", "")

	stdout, _, err := executeCLI(t, home, "send", "--to", "helper", "--content", "ping", "--plain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dispatch failed")
	assert.Contains(t, stdout, "GEMINI_API_KEY is not set")
	assert.Zero(t, server.calls.Load())
}

func TestSecretSetProvidesAPIKey(t *testing.T) {
	server := newGeminiServer(t, "pong", 0)
	server.wantKey = "stored-key"
	home := t.TempDir()
	require.NoError(t, writeAgentFixture(home, "helper", "Helper"))
	t.Setenv("GEMINI_API_KEY", "")

	stdout, _, err := executeCLI(t, home, "secret", "set", "--value", "stored-key")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Stored secret GEMINI_API_KEY")

	stdout, _, err = executeCLI(t, home, "send", "--to", "helper", "--content", "ping", "--plain")
	require.NoError(t, err)
	assert.Contains(t, stdout, "\"generated_text\": \"pong\"")

	_, _, err = executeCLI(t, home, "secret", "remove")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(home, ".synapse", "secrets", "GEMINI_API_KEY"))
}

func TestSendToUnknownNodeFails(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "send", "--to", "ghost", "--content", "ping")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node not found")
}

func TestSendRequiresContentOrFrom(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "send", "--to", "helper")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one of the flags in the group [content from] is required")
}

func TestSendShowsWaitSpinner(t *testing.T) {
	newGeminiServer(t, "pong", 200*time.Millisecond)
	home := t.TempDir()
	require.NoError(t, writeAgentFixture(home, "helper", "Helper"))

	_, stderr, err := executeCLI(t, home, "send", "--to", "helper", "--content", "ping")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Waiting for helper")
}

func TestStreamThroughFormatterReachesSecondAgent(t *testing.T) {
	server := newGeminiServer(t, "pong", 0)
	home := t.TempDir()
	require.NoError(t, writeAgentFixture(home, "writer", "Writer"))
	require.NoError(t, writeAgentFixture(home, "critic", "Critic"))

	stdout, _, err := executeCLI(t, home,
		"stream",
		"--nodes", "writer,inter_agent_formatter,critic",
		"--content", "draft a haiku",
		"--plain",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "writer: pong")
	assert.Contains(t, stdout, "inter_agent_formatter: pong")
	assert.Contains(t, stdout, "critic: pong")
	assert.EqualValues(t, 2, server.calls.Load())
}

func TestStreamFailsOnUnregisteredNode(t *testing.T) {
	newGeminiServer(t, "pong", 0)
	home := t.TempDir()
	require.NoError(t, writeAgentFixture(home, "writer", "Writer"))

	stdout, _, err := executeCLI(t, home, "stream", "--nodes", "writer,missing", "--content", "hi", "--plain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pipeline writer -> missing: dispatch failed")
	assert.Contains(t, stdout, "writer: pong")
	assert.Contains(t, stdout, "missing: (not registered)")
}

func TestMultiUpdatesReachableNodesAndFails(t *testing.T) {
	server := newGeminiServer(t, "pong", 0)
	home := t.TempDir()
	require.NoError(t, writeAgentFixture(home, "a", "A"))
	require.NoError(t, writeAgentFixture(home, "b", "B"))

	stdout, _, err := executeCLI(t, home, "multi", "--to", "a,missing,b", "--content", "hi", "--plain", "--json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dispatch failed")
	assert.EqualValues(t, 2, server.calls.Load())

	var outputs []nodeOutputJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &outputs))
	require.Len(t, outputs, 3)
	assert.True(t, outputs[0].Found)
	assert.Equal(t, "pong", outputs[0].Output.GeneratedText())
	assert.False(t, outputs[1].Found)
	assert.Equal(t, "pong", outputs[2].Output.GeneratedText())
}

func TestRouteAddListAndRun(t *testing.T) {
	newGeminiServer(t, "pong", 0)
	home := t.TempDir()
	require.NoError(t, writeAgentFixture(home, "writer", "Writer"))
	require.NoError(t, writeAgentFixture(home, "critic", "Critic"))

	stdout, _, err := executeCLI(t, home,
		"route", "add",
		"--id", "review",
		"--nodes", "writer, inter_agent_formatter ,critic",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Saved route review (pipeline, nodes: 3)")

	stdout, _, err = executeCLI(t, home, "route", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "review\tpipeline\twriter,inter_agent_formatter,critic")

	stdout, _, err = executeCLI(t, home, "route", "run", "review", "--content", "hello", "--plain")
	require.NoError(t, err)
	assert.Contains(t, stdout, "critic: pong")
}

func TestRouteAddRejectsUnknownKind(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "route", "add", "--id", "r", "--kind", "fanout", "--nodes", "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fanout")
}

func TestRouteRunUnknownRoute(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "route", "run", "nope", "--content", "hi", "--plain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "route not found")
}

func TestChatConversationUntilQuit(t *testing.T) {
	server := newGeminiServer(t, "hello there", 0)
	home := t.TempDir()
	require.NoError(t, writeAgentFixture(home, "general_assistant", "General Assistant"))

	stdout, _, err := executeCLIWithInput(t, home, strings.NewReader("hi\n\nhow are you?\nquit\nignored\n"), "chat", "--plain")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Type 'quit' or 'exit'")
	assert.Equal(t, 2, strings.Count(stdout, "general_assistant: hello there"))
	assert.Contains(t, stdout, "Ending conversation. Goodbye!")
	assert.EqualValues(t, 2, server.calls.Load())
}

func TestChatEndsOnEOF(t *testing.T) {
	newGeminiServer(t, "ok", 0)
	home := t.TempDir()
	require.NoError(t, writeAgentFixture(home, "helper", "Helper"))

	stdout, _, err := executeCLIWithInput(t, home, strings.NewReader("hi\n"), "chat", "--agent", "helper", "--plain")
	require.NoError(t, err)
	assert.Contains(t, stdout, "helper: ok")
}

func TestChatUnknownAgent(t *testing.T) {
	_, _, err := executeCLIWithInput(t, t.TempDir(), strings.NewReader(""), "chat", "--agent", "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat with ghost")
}

type geminiServer struct {
	*httptest.Server
	calls   atomic.Int32
	wantKey string
}

// newGeminiServer answers every generateContent call with text and points the
// CLI at it through the environment.
func newGeminiServer(t *testing.T, text string, delay time.Duration) *geminiServer {
	t.Helper()

	s := &geminiServer{wantKey: "test-key"}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, ":generateContent"), r.URL.Path)
		assert.Equal(t, s.wantKey, r.Header.Get("x-goog-api-key"))
		_, _ = io.Copy(io.Discard, r.Body)
		if delay > 0 {
			time.Sleep(delay)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":%q}]}}]}`, text)
	}))
	t.Cleanup(s.Close)

	t.Setenv("SYNAPSE_API_URL", s.URL+"/")
	t.Setenv("GEMINI_API_KEY", "test-key")
	return s
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	return executeCLIWithInput(t, home, strings.NewReader(""), args...)
}

func executeCLIWithInput(t *testing.T, home string, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	// Keep the pass backend out of the secret chain.
	t.Setenv("PATH", t.TempDir())

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeAgentFixture(home, id, name string) error {
	dir := filepath.Join(home, ".synapse", "agents")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	agent := fmt.Sprintf(`id = %q
name = %q

[parameters]
model = "gemini-2.0-flash"
temperature = 0.2
max_history_turns = 2
instructions = "You are %s."
`, id, name, name)

	return os.WriteFile(filepath.Join(dir, id+".toml"), []byte(agent), 0o600)
}
