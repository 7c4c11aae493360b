package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	configPath string
	dir        string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()
	dir := t.TempDir()

	seedPath := filepath.Join(dir, "aliases.yaml")
	writeFile(t, seedPath, `
aliases:
  scifi: [science fiction]
  ww2: [world war ii, second world war]
`)

	configPath := filepath.Join(dir, "test.yaml")
	writeFile(t, configPath, `
http:
  port: 8080
aliases:
  driver: memory
  seed_file: `+seedPath+`
ranking:
  default_limit: 10
  max_limit: 20
`)
	return &cliTestEnv{configPath: configPath, dir: dir}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestNormalizeCommand(t *testing.T) {
	out, _, err := runCLI(t, []string{"normalize", "The Dark Knight!", "Sci-Fi"}, "")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	requireContains(t, out, "the_dark_knight")
	requireContains(t, out, "sci_fi")
}

func TestNormalizeCommand_JSON(t *testing.T) {
	out, _, err := runCLI(t, []string{"--json", "normalize", "Hello, World"}, "")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	var rows []struct {
		Normalized string   `json:"normalized"`
		Tokens     []string `json:"tokens"`
	}
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 1 || rows[0].Normalized != "hello_world" || len(rows[0].Tokens) != 2 {
		t.Errorf("unexpected output: %+v", rows)
	}
}

func TestScoreCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	docs := filepath.Join(env.dir, "movies.json")
	writeFile(t, docs, `[
		{"title": "Batman Begins", "year": 2005, "popularity": 70},
		{"title": "The Dark Knight", "year": 2008, "popularity": 90},
		{"title": "The Dark Knight Rises", "year": 2012, "popularity": 80}
	]`)

	out, _, err := runCLI(t, []string{"score", "--kind", "movie", "--query", "the dark knight", "--file", docs}, env.configPath)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	requireContains(t, out, "raw_title")
	requireContains(t, out, "3 of 3 candidates shown")
	requireContains(t, out, "Top hit exact match: yes")

	first := strings.Index(out, "The Dark Knight ")
	batman := strings.Index(out, "Batman Begins")
	if first < 0 || batman < 0 || first > batman {
		t.Errorf("expected The Dark Knight before Batman Begins:\n%s", out)
	}
}

func TestScoreCommand_JSONWithAliases(t *testing.T) {
	env := setupCLITestEnv(t)
	docs := filepath.Join(env.dir, "movies.json")
	writeFile(t, docs, `[{"title": "Other"}, {"title": "Classic Science Fiction Shorts"}]`)

	out, _, err := runCLI(t, []string{
		"--json", "score", "-k", "movie", "-q", "SciFi", "-f", docs, "-n", "1",
	}, env.configPath)
	if err != nil {
		t.Fatalf("score: %v", err)
	}

	var res struct {
		Total int  `json:"total"`
		Exact bool `json:"top_exact"`
		Hits  []struct {
			Rule  string         `json:"rule"`
			Title string         `json:"title"`
			Key   map[string]any `json:"key"`
		} `json:"hits"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Total != 2 || len(res.Hits) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Hits[0].Rule != "title_alias" || res.Hits[0].Title != "Classic Science Fiction Shorts" {
		t.Errorf("unexpected top hit: %+v", res.Hits[0])
	}
	if res.Hits[0].Key["tier"] != float64(4) {
		t.Errorf("key = %v, want tier 4", res.Hits[0].Key)
	}
	if res.Exact {
		t.Error("alias hit must not be an exact match")
	}
}

func TestScoreCommand_UnknownKind(t *testing.T) {
	env := setupCLITestEnv(t)
	docs := filepath.Join(env.dir, "docs.json")
	writeFile(t, docs, `[{"title": "x"}]`)

	_, _, err := runCLI(t, []string{"score", "--kind", "music", "--query", "x", "--file", docs}, env.configPath)
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
	requireContains(t, err.Error(), "unknown source kind")
}

func TestExactCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{
		"exact", "--kind", "author", "--query", "Ursula K. Le Guin", "--doc", `{"name": "Ursula K Le Guin"}`,
	}, env.configPath)
	if err != nil {
		t.Fatalf("exact: %v", err)
	}
	requireContains(t, out, "exact match yes")

	out, _, err = runCLI(t, []string{
		"exact", "--kind", "podcast", "--query", "history", "--doc", `{"title": "Hardcore History"}`,
	}, env.configPath)
	if err != nil {
		t.Fatalf("exact: %v", err)
	}
	requireContains(t, out, "exact match no")
}

func TestAliasesGet(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"aliases", "get", "WW2"}, env.configPath)
	if err != nil {
		t.Fatalf("aliases get: %v", err)
	}
	requireContains(t, out, "second_world_war")
	requireContains(t, out, "world_war_ii")

	_, _, err = runCLI(t, []string{"aliases", "get", "unknown"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for unknown token")
	}
	requireContains(t, err.Error(), "alias not found")
}

func TestAliasesLoadAndList(t *testing.T) {
	env := setupCLITestEnv(t)
	extra := filepath.Join(env.dir, "extra.yaml")
	writeFile(t, extra, "aliases:\n  nyc: [new york city]\n")

	out, _, err := runCLI(t, []string{"aliases", "load", extra}, env.configPath)
	if err != nil {
		t.Fatalf("aliases load: %v", err)
	}
	requireContains(t, out, "Loaded 1 aliases for 1 tokens")

	out, _, err = runCLI(t, []string{"aliases", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("aliases list: %v", err)
	}
	requireContains(t, out, "scifi")
	requireContains(t, out, "ww2")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runCLI(t, []string{"version"}, "")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	requireContains(t, out, "tierankctl dev")
}

func TestMissingConfig(t *testing.T) {
	_, _, err := runCLI(t, []string{"aliases", "list"}, filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config")
	}
	requireContains(t, err.Error(), "load configuration")
}

func TestAliasesForceLoadAndDelete(t *testing.T) {
	env := setupCLITestEnv(t)
	extra := filepath.Join(env.dir, "extra.yaml")
	writeFile(t, extra, "aliases:\n  lotr: [lord of the rings, the lord of the rings]\n")

	out, _, err := runCLI(t, []string{"aliases", "load", "--force", extra}, env.configPath)
	if err != nil {
		t.Fatalf("aliases load --force: %v", err)
	}
	requireContains(t, out, "Loaded 2 aliases for 1 tokens")

	out, _, err = runCLI(t, []string{"aliases", "delete", "scifi"}, env.configPath)
	if err != nil {
		t.Fatalf("aliases delete: %v", err)
	}
	requireContains(t, out, `Deleted aliases of "scifi"`)
}
