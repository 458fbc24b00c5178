package command

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/clipmesh-go/internal/server/config"
)

// CheckCommand returns the check command.
func CheckCommand() *cli.Command {
	return &cli.Command{
		Name:   "check",
		Usage:  "Validate the configuration and print it with secrets masked",
		Action: checkAction,
	}
}

func checkAction(c *cli.Context) error {
	cfg, path, err := loadConfig(c)
	if err != nil {
		return err
	}
	instanceID, err := cfg.ResolveInstanceID()
	if err != nil {
		return err
	}
	if path == "" {
		path = "(none, defaults and environment only)"
	}

	s := config.Sanitize(cfg)
	peers := make([]string, len(s.Peers))
	for i, p := range s.Peers {
		peers[i] = fmt.Sprintf("%s:%d", p.Host, p.Port)
	}

	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"config file", path},
		{"instance_id", instanceID},
		{"listen_port", fmt.Sprint(s.ListenPort)},
		{"secret_key", s.SecretKey},
		{"cipher", s.Cipher},
		{"peers", strings.Join(peers, ", ")},
		{"max_file_size", fmt.Sprint(s.MaxFileSize)},
		{"download_dir", s.DownloadDir},
		{"clipboard.backend", s.Clipboard.Backend},
		{"sync.suppress_window", s.Sync.SuppressWindow.String()},
		{"sync.on_error", s.Sync.OnError},
		{"metrics.addr", s.Metrics.Addr},
		{"log.level", s.Log.Level},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r[0], r[1])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "configuration OK")
	return nil
}
