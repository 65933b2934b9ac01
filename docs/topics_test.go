package docs

import (
	"bufio"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// TestTopics keeps the readme index and the topic files in sync: every
// topic the readme lists must load, and every topic file must be listed.
func TestTopics(t *testing.T) {
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	for scanner.Scan() {
		if matches := topicRegex.FindStringSubmatch(scanner.Text()); len(matches) > 1 {
			topicsInReadme = append(topicsInReadme, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	for _, topic := range topicsInReadme {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := GetTopic(topic); err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() failed: %v", err)
	}
	for _, topic := range all {
		found := false
		for _, listed := range topicsInReadme {
			if listed == topic {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
	}
}

// TestTopicsAreValidMarkdown parses every topic and checks it opens with a
// level-1 heading, so glamour has something sensible to render.
func TestTopicsAreValidMarkdown(t *testing.T) {
	all, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	all = append(all, "readme")

	for _, topic := range all {
		t.Run(topic, func(t *testing.T) {
			content, err := GetTopic(topic)
			if err != nil {
				t.Fatal(err)
			}
			source := []byte(content)
			root := goldmark.DefaultParser().Parse(text.NewReader(source))

			first := root.FirstChild()
			if first == nil {
				t.Fatal("topic is empty")
			}
			h, ok := first.(*ast.Heading)
			if !ok || h.Level != 1 {
				t.Errorf("topic does not start with a level-1 heading")
			}
		})
	}
}

func TestGetTopic_Unknown(t *testing.T) {
	if _, err := GetTopic("no-such-topic"); err == nil {
		t.Error("GetTopic() should fail on an unknown topic")
	}
}

func TestGetTopic_Star(t *testing.T) {
	content, err := GetTopic("*")
	if err != nil {
		t.Fatalf("GetTopic(*) failed: %v", err)
	}
	for _, want := range []string{"# The Transaction Ledger", "# Positions and Groups", "# Market Data"} {
		if !strings.Contains(content, want) {
			t.Errorf("GetTopic(*) missing %q", want)
		}
	}
}
