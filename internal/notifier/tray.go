package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/chorewheel/internal/constants"
	"github.com/julianstephens/chorewheel/internal/logger"
)

const secretHeader = "X-Chorewheel-Secret"

// Swapped out in tests.
var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
	retryDelay        = constants.NotifyRetryDelay
)

var errTrayNotRunning = errors.New(constants.TrayExecutablePrefix + " is not running")

// Tray delivers messages to the desktop tray companion over its local webhook.
type Tray struct {
	client *http.Client
}

type WebhookPayload struct {
	ID         string `json:"id"`
	Title      string `json:"title,omitempty"`
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

// endpoint is what the tray app advertises in its lockfile as "port|pid|secret".
type endpoint struct {
	port   int
	pid    int
	secret string
}

func (e endpoint) url() string {
	return "http://127.0.0.1:" + strconv.Itoa(e.port)
}

func NewTray() *Tray {
	return &Tray{client: &http.Client{Timeout: 5 * time.Second}}
}

func (t *Tray) Location() string {
	return constants.TrayLocation
}

func (t *Tray) Send(msg Message) error {
	ep, err := locateTray()
	if err != nil {
		return err
	}

	payload := WebhookPayload{
		ID:         msg.ID,
		Title:      msg.Title,
		Text:       msg.Text,
		DurationMs: constants.NotificationDurationMs,
	}

	var lastErr error
	for attempt := 1; attempt <= constants.NotifyMaxRetries; attempt++ {
		if lastErr = t.post(ep, payload); lastErr == nil {
			return nil
		}
		logger.Warn("Tray notification failed", "attempt", attempt, "id", msg.ID, "error", lastErr)
		if attempt < constants.NotifyMaxRetries {
			time.Sleep(retryDelay)
		}
	}
	return fmt.Errorf("failed to notify tray after %d attempts: %w", constants.NotifyMaxRetries, lastErr)
}

// TrayConfigDir is where the tray app keeps its lockfile. The app's
// settings.json may point the lockfile somewhere else.
func TrayConfigDir() (string, error) {
	base, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	dir := filepath.Join(base, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(dir, "settings.json"))
	if err != nil {
		return dir, nil
	}
	var settings struct {
		Settings struct {
			LockfileDir string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		logger.Debug("Ignoring unreadable tray settings", "error", err)
		return dir, nil
	}
	if custom := strings.TrimSpace(settings.Settings.LockfileDir); custom != "" {
		return custom, nil
	}
	return dir, nil
}

func locateTray() (endpoint, error) {
	dir, err := TrayConfigDir()
	if err != nil {
		return endpoint{}, err
	}
	content, err := os.ReadFile(filepath.Join(dir, constants.NotifierLockfileName))
	if err != nil {
		return endpoint{}, errTrayNotRunning
	}
	ep, err := parseLockfile(string(content))
	if err != nil {
		return endpoint{}, err
	}
	return ep, ep.verifyProcess()
}

func parseLockfile(content string) (endpoint, error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 3 {
		return endpoint{}, errors.New("lockfile is malformed")
	}

	port, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return endpoint{}, errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return endpoint{}, fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return endpoint{}, errors.New("invalid process ID in lockfile")
	}
	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return endpoint{}, errors.New("secret in lockfile is empty")
	}
	return endpoint{port: port, pid: pid, secret: secret}, nil
}

// verifyProcess guards against a stale lockfile whose pid was reused.
func (e endpoint) verifyProcess() error {
	proc, err := findProcessFunc(e.pid)
	if err != nil || proc == nil {
		return errTrayNotRunning
	}
	if !strings.HasPrefix(proc.Executable(), constants.TrayExecutablePrefix) {
		return fmt.Errorf("process with PID %d is not %s (is %s)", e.pid, constants.TrayExecutablePrefix, proc.Executable())
	}
	return nil
}

func (t *Tray) post(ep endpoint, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, ep.url(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(secretHeader, ep.secret)

	res, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}
