package container

import (
	"context"
	"errors"
	"net/netip"
	"strings"
	"testing"

	"github.com/uoi-cloud/lxcctl/internal/config"
	"github.com/uoi-cloud/lxcctl/internal/runtime"
	"github.com/uoi-cloud/lxcctl/internal/subnet"
	"github.com/uoi-cloud/lxcctl/internal/system"
)

// staticUsed is a canned UsedSource for allocation tests.
type staticUsed struct {
	subnets []netip.Prefix
	addrs   []netip.Addr
	err     error
}

func (s *staticUsed) Used(ctx context.Context) ([]netip.Prefix, []netip.Addr, error) {
	return s.subnets, s.addrs, s.err
}

type env struct {
	cfg  *config.Config
	rt   *runtime.MockRuntime
	exec *system.MockExecutor
	fs   *system.MockFS
}

func newEnv() *env {
	return &env{
		cfg:  config.Default(),
		rt:   runtime.NewMockRuntime(),
		exec: system.NewMockExecutor(),
		fs:   system.NewMockFS(),
	}
}

func (e *env) container(t *testing.T, name string, used subnet.UsedSource) *Container {
	t.Helper()
	if used == nil {
		used = &staticUsed{}
	}
	c, err := New(name, e.cfg, e.rt,
		WithExecutor(e.exec),
		WithFileSystem(e.fs),
		WithUsedSource(used),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func TestNew_RejectsBadName(t *testing.T) {
	e := newEnv()
	if _, err := New("../escape", e.cfg, e.rt); err == nil {
		t.Error("expected invalid name error")
	}
}

func TestIP_FirstAddress(t *testing.T) {
	e := newEnv()
	e.rt.AddContainer("web", runtime.StatusRunning,
		netip.MustParseAddr("10.0.3.5"), netip.MustParseAddr("10.0.3.6"))
	c := e.container(t, "web", nil)

	ip, err := c.IP(context.Background())
	if err != nil {
		t.Fatalf("IP failed: %v", err)
	}
	if ip.String() != "10.0.3.5" {
		t.Errorf("IP = %s, want 10.0.3.5", ip)
	}
}

func TestIP_NoAddresses(t *testing.T) {
	e := newEnv()
	e.rt.AddContainer("web", runtime.StatusRunning)
	c := e.container(t, "web", nil)

	_, err := c.IP(context.Background())

	var noAddr *NoAddressError
	if !errors.As(err, &noAddr) {
		t.Fatalf("IP error = %v, want *NoAddressError", err)
	}
	if noAddr.Container != "web" {
		t.Errorf("NoAddressError.Container = %q", noAddr.Container)
	}
}

func TestIP_LookupFailure(t *testing.T) {
	e := newEnv()
	e.rt.AddContainer("web", runtime.StatusRunning)
	cause := errors.New("lxc-info exploded")
	e.rt.SetError("Addresses", cause)
	c := e.container(t, "web", nil)

	_, err := c.IP(context.Background())

	var noAddr *NoAddressError
	if !errors.As(err, &noAddr) {
		t.Fatalf("IP error = %v, want *NoAddressError", err)
	}
	if !errors.Is(err, cause) {
		t.Error("NoAddressError should wrap the lookup failure")
	}
}

func TestRun_Success(t *testing.T) {
	e := newEnv()
	e.exec.AddResponse("lxc-attach", system.MockResponse{Stdout: []byte("hello\n")})
	c := e.container(t, "web", nil)

	out, err := c.Run(context.Background(), "echo hello", false)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out != "hello\n" {
		t.Errorf("Run stdout = %q", out)
	}

	last, _ := e.exec.LastCommand()
	want := "lxc-attach -P /var/lib/lxc -n web -- echo hello"
	if last.String() != want {
		t.Errorf("command = %q, want %q", last.String(), want)
	}
}

func TestRun_SplitsQuotedCommand(t *testing.T) {
	e := newEnv()
	c := e.container(t, "web", nil)

	_, err := c.Run(context.Background(), `sh -c "echo hi there"`, false)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	last, _ := e.exec.LastCommand()
	args := last.Args
	if args[len(args)-1] != "echo hi there" {
		t.Errorf("quoted argument not preserved: %v", args)
	}
}

func TestRun_NonZeroExit(t *testing.T) {
	e := newEnv()
	e.rt.AddContainer("web", runtime.StatusRunning, netip.MustParseAddr("10.0.3.5"))
	e.exec.AddResponse("lxc-attach", system.MockResponse{
		Stderr:   []byte("command not found\n"),
		ExitCode: 1,
	})
	c := e.container(t, "web", nil)

	_, err := c.Run(context.Background(), "bogus-cmd", false)

	var runErr *RunError
	if !errors.As(err, &runErr) {
		t.Fatalf("Run error = %v, want *RunError", err)
	}
	if runErr.Cmd != "bogus-cmd" || runErr.ExitCode != 1 {
		t.Errorf("RunError = %+v", runErr)
	}
	if runErr.IP != "10.0.3.5" {
		t.Errorf("RunError.IP = %q, want container address", runErr.IP)
	}
	if runErr.Stderr != "command not found" {
		t.Errorf("RunError.Stderr = %q", runErr.Stderr)
	}
	if !strings.Contains(runErr.Error(), "exit status 1") {
		t.Errorf("Error() = %q, should mention exit status", runErr.Error())
	}
}

func TestRun_ViaSSH(t *testing.T) {
	e := newEnv()
	e.rt.AddContainer("web", runtime.StatusRunning, netip.MustParseAddr("10.0.3.5"))
	c := e.container(t, "web", nil)

	_, err := c.Run(context.Background(), "uptime", true)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	last, _ := e.exec.LastCommand()
	if last.Name != "ssh" {
		t.Fatalf("command = %q, want ssh", last.Name)
	}
	joined := last.String()
	if !strings.Contains(joined, "ubuntu@10.0.3.5") {
		t.Errorf("ssh destination missing: %q", joined)
	}
	if !strings.Contains(joined, "BatchMode=yes") {
		t.Errorf("ssh should run in batch mode: %q", joined)
	}
}

func TestRun_SSHNeedsAddress(t *testing.T) {
	e := newEnv()
	e.rt.AddContainer("web", runtime.StatusRunning)
	c := e.container(t, "web", nil)

	_, err := c.Run(context.Background(), "uptime", true)

	var noAddr *NoAddressError
	if !errors.As(err, &noAddr) {
		t.Fatalf("Run error = %v, want *NoAddressError", err)
	}
	if len(e.exec.Commands) != 0 {
		t.Error("no command should run when the container has no address")
	}
}

func TestCreate_FlushesImageCacheByDefault(t *testing.T) {
	e := newEnv()
	c := e.container(t, "web", nil)

	if err := c.Create(context.Background(), "/tmp/userdata.yaml"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	calls := e.rt.GetCallsFor("Create")
	if len(calls) != 1 {
		t.Fatalf("Create calls = %d, want 1", len(calls))
	}
	opts := calls[0].Args[1].(runtime.CreateOptions)
	if opts.Template != "ubuntu-cloud" {
		t.Errorf("Template = %q", opts.Template)
	}
	want := []string{"-F", "-u", "/tmp/userdata.yaml"}
	if len(opts.TemplateArgs) != len(want) {
		t.Fatalf("TemplateArgs = %v, want %v", opts.TemplateArgs, want)
	}
	for i, w := range want {
		if opts.TemplateArgs[i] != w {
			t.Errorf("TemplateArgs[%d] = %q, want %q", i, opts.TemplateArgs[i], w)
		}
	}
}

func TestCreate_RespectsImageCache(t *testing.T) {
	e := newEnv()
	e.cfg.UseImageCache = true
	c := e.container(t, "web", nil)

	if err := c.Create(context.Background(), "/tmp/userdata.yaml"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	opts := e.rt.GetCallsFor("Create")[0].Args[1].(runtime.CreateOptions)
	for _, a := range opts.TemplateArgs {
		if a == "-F" {
			t.Error("image cache enabled, -F must not be passed")
		}
	}
}

func TestDestroy_StopsRunningContainer(t *testing.T) {
	e := newEnv()
	e.rt.AddContainer("web", runtime.StatusRunning)
	c := e.container(t, "web", nil)

	if err := c.Destroy(context.Background()); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}

	if len(e.rt.GetCallsFor("Stop")) != 1 {
		t.Error("running container should be stopped before destroy")
	}
	if len(e.rt.GetCallsFor("Destroy")) != 1 {
		t.Error("container should be destroyed")
	}
}

func TestDestroy_SkipsStopWhenStopped(t *testing.T) {
	e := newEnv()
	e.rt.AddContainer("web", runtime.StatusStopped)
	c := e.container(t, "web", nil)

	if err := c.Destroy(context.Background()); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}

	if len(e.rt.GetCallsFor("Stop")) != 0 {
		t.Error("stopped container must not receive a redundant stop")
	}
	if len(e.rt.GetCallsFor("Destroy")) != 1 {
		t.Error("container should still be destroyed")
	}
}

func TestDestroy_MissingContainerIsNoop(t *testing.T) {
	e := newEnv()
	c := e.container(t, "ghost", nil)

	if err := c.Destroy(context.Background()); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}

	if len(e.rt.GetCallsFor("Stop")) != 0 || len(e.rt.GetCallsFor("Destroy")) != 0 {
		t.Error("destroy of a missing container should issue no runtime calls")
	}
}

func TestSetStaticRoute(t *testing.T) {
	e := newEnv()
	e.rt.AddContainer("web", runtime.StatusRunning, netip.MustParseAddr("10.0.0.20"))
	c := e.container(t, "web", nil)

	err := c.SetStaticRoute(context.Background(), netip.MustParsePrefix("10.0.3.0/24"))
	if err != nil {
		t.Fatalf("SetStaticRoute failed: %v", err)
	}

	last, _ := e.exec.LastCommand()
	want := "ip route replace 10.0.3.0/24 via 10.0.0.20 dev lxcbr0"
	if last.String() != want {
		t.Errorf("command = %q, want %q", last.String(), want)
	}
}

func TestSetStaticRoute_FailureIncludesOutput(t *testing.T) {
	e := newEnv()
	e.rt.AddContainer("web", runtime.StatusRunning, netip.MustParseAddr("10.0.0.20"))
	e.exec.AddResponse("ip", system.MockResponse{
		Stderr:   []byte("RTNETLINK answers: no such device"),
		ExitCode: 2,
	})
	c := e.container(t, "web", nil)

	err := c.SetStaticRoute(context.Background(), netip.MustParsePrefix("10.0.3.0/24"))
	if err == nil {
		t.Fatal("expected route failure")
	}
	if !strings.Contains(err.Error(), "RTNETLINK") {
		t.Errorf("error should include command output: %v", err)
	}
}

func TestSetStaticRoute_NeedsAddress(t *testing.T) {
	e := newEnv()
	e.rt.AddContainer("web", runtime.StatusRunning)
	c := e.container(t, "web", nil)

	err := c.SetStaticRoute(context.Background(), netip.MustParsePrefix("10.0.3.0/24"))

	var noAddr *NoAddressError
	if !errors.As(err, &noAddr) {
		t.Fatalf("error = %v, want *NoAddressError", err)
	}
}

func TestWriteNetConfig(t *testing.T) {
	e := newEnv()
	used := &staticUsed{subnets: []netip.Prefix{netip.MustParsePrefix("10.0.0.0/24")}}
	c := e.container(t, "web", used)

	sub, err := c.WriteNetConfig(context.Background())
	if err != nil {
		t.Fatalf("WriteNetConfig failed: %v", err)
	}
	if sub.String() != "10.0.1.0/24" {
		t.Errorf("allocated subnet = %s, want 10.0.1.0/24", sub)
	}

	data, ok := e.fs.GetFile("/var/lib/lxc/web/rootfs/etc/default/lxc-net")
	if !ok {
		t.Fatal("net config file was not written")
	}
	content := string(data)
	for _, w := range []string{
		`LXC_NETWORK="10.0.1.0/24"`,
		`LXC_ADDR="10.0.1.1"`,
		`LXC_DHCP_RANGE="10.0.1.2,10.0.1.254"`,
	} {
		if !strings.Contains(content, w) {
			t.Errorf("net config missing %q:\n%s", w, content)
		}
	}
}

func TestWriteNetConfig_Exhausted(t *testing.T) {
	e := newEnv()
	e.cfg.SubnetSpace = "10.0.0.0/23"
	used := &staticUsed{subnets: []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/24"),
		netip.MustParsePrefix("10.0.1.0/24"),
	}}
	c := e.container(t, "web", used)

	_, err := c.WriteNetConfig(context.Background())

	var exhausted *subnet.ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("error = %v, want *ExhaustedError", err)
	}
}

func TestWriteNetConfig_UsedSourceFailure(t *testing.T) {
	e := newEnv()
	used := &staticUsed{err: errors.New("ip route broke")}
	c := e.container(t, "web", used)

	if _, err := c.WriteNetConfig(context.Background()); err == nil {
		t.Error("expected used-source failure to propagate")
	}
}
