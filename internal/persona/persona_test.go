package persona

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"chatter-trainer/internal/conversation"
	"chatter-trainer/internal/llm"
	"chatter-trainer/internal/logger"
)

type fakeLLM struct {
	resp llm.Response
	err  error
	got  llm.Request
}

func (f *fakeLLM) Generate(ctx context.Context, req llm.Request) (llm.Response, error) {
	f.got = req
	return f.resp, f.err
}

func TestMessagesRoleMapping(t *testing.T) {
	msgs := Messages("be a fan", []conversation.Turn{
		{Role: conversation.RoleFan, Content: OpeningLine},
		{Role: conversation.RoleChatter, Content: "hey babe"},
	})
	if len(msgs) != 3 {
		t.Fatalf("want 3 messages, got %d", len(msgs))
	}
	if msgs[0].Role != llm.RoleSystem || msgs[0].Content != "be a fan" {
		t.Fatalf("system message wrong: %+v", msgs[0])
	}
	if msgs[1].Role != llm.RoleAssistant || msgs[2].Role != llm.RoleUser {
		t.Fatalf("role mapping wrong: %+v", msgs)
	}
}

func TestReplyUsesPersonaTemperature(t *testing.T) {
	f := &fakeLLM{resp: llm.Response{Content: "how much for a pic?"}}
	g := NewGenerator(f, "", logger.Nop())

	reply, err := g.Reply(context.Background(), []conversation.Turn{{Role: conversation.RoleFan, Content: "hi"}})
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if reply != "how much for a pic?" {
		t.Fatalf("unexpected reply %q", reply)
	}
	if f.got.Temperature != Temperature {
		t.Fatalf("temperature %v", f.got.Temperature)
	}
	if f.got.Messages[0].Content != DefaultInstruction {
		t.Fatalf("default instruction not used")
	}
}

func TestReplyFailureKeepsKind(t *testing.T) {
	f := &fakeLLM{err: errors.Join(llm.ErrGenerationFailed, errors.New("timeout"))}
	g := NewGenerator(f, "custom", logger.Nop())

	_, err := g.Reply(context.Background(), nil)
	if !errors.Is(err, llm.ErrGenerationFailed) {
		t.Fatalf("want ErrGenerationFailed, got %v", err)
	}
}

func TestLoadInstruction(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "persona.txt")
	if err := os.WriteFile(p, []byte("  You are a shy fan.\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := LoadInstruction(p, logger.Nop()); got != "You are a shy fan." {
		t.Fatalf("got %q", got)
	}
	if got := LoadInstruction(filepath.Join(dir, "missing.txt"), logger.Nop()); got != "" {
		t.Fatalf("missing file should yield empty, got %q", got)
	}
	if got := LoadInstruction("", logger.Nop()); got != "" {
		t.Fatalf("empty path should yield empty, got %q", got)
	}
}
