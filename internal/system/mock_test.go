package system

import (
	"context"
	"errors"
	"io/fs"
	"testing"
)

func TestMockFS_ReadWrite(t *testing.T) {
	m := NewMockFS()

	if err := m.WriteFile("/etc/default/lxc-net", []byte("LXC_BRIDGE=\"lxcbr0\""), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := m.ReadFile("/etc/default/lxc-net")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "LXC_BRIDGE=\"lxcbr0\"" {
		t.Errorf("ReadFile = %q", data)
	}

	if _, err := m.ReadFile("/missing"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile missing file: got %v, want fs.ErrNotExist", err)
	}
}

func TestMockFS_MkdirAllAndExists(t *testing.T) {
	m := NewMockFS()

	if err := m.MkdirAll("/var/lib/lxc/web/rootfs/etc/default", 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	for _, dir := range []string{
		"/var/lib/lxc/web/rootfs/etc/default",
		"/var/lib/lxc/web/rootfs",
		"/var/lib/lxc",
	} {
		if !m.Exists(dir) {
			t.Errorf("Exists(%q) = false after MkdirAll", dir)
		}
	}
}

func TestMockFS_ErrorInjection(t *testing.T) {
	m := NewMockFS()
	m.WriteFileErr = errors.New("disk full")

	if err := m.WriteFile("/x", nil, 0644); err == nil {
		t.Error("expected injected write error")
	}
}

func TestMockExecutor_RecordsCommands(t *testing.T) {
	m := NewMockExecutor()
	ctx := context.Background()

	_, _ = m.Execute(ctx, "lxc-start", "-d", "-n", "web")

	last, ok := m.LastCommand()
	if !ok {
		t.Fatal("no command recorded")
	}
	if last.String() != "lxc-start -d -n web" {
		t.Errorf("LastCommand = %q", last.String())
	}
}

func TestMockExecutor_PatternResponses(t *testing.T) {
	m := NewMockExecutor()
	m.AddResponse("lxc-info -s", MockResponse{Stdout: []byte("State: RUNNING\n")})

	out, err := m.Execute(context.Background(), "lxc-info", "-s", "-n", "web")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if string(out) != "State: RUNNING\n" {
		t.Errorf("Execute = %q", out)
	}
}

func TestMockExecutor_RunExitCode(t *testing.T) {
	m := NewMockExecutor()
	m.AddResponse("lxc-attach", MockResponse{Stderr: []byte("boom"), ExitCode: 1})

	cap, err := m.Run(context.Background(), "lxc-attach", "-n", "web", "--", "false")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if cap.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", cap.ExitCode)
	}
	if string(cap.Stderr) != "boom" {
		t.Errorf("Stderr = %q", cap.Stderr)
	}
}

func TestMockExecutor_RunStartError(t *testing.T) {
	m := NewMockExecutor()
	m.AddResponse("nope", MockResponse{Err: errors.New("executable not found")})

	if _, err := m.Run(context.Background(), "nope"); err == nil {
		t.Error("expected start error")
	}
}
