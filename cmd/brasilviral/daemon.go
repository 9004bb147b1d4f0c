// cmd/brasilviral/daemon.go
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

const launcherTemplate = `#!/bin/bash
# Launches the news automation daemon in the background.
cd "$(dirname "$0")/.." || exit 1
nohup %s -base-dir . -run-scheduler >> logs/automation.out 2>&1 &
echo "Automation started (pid $!)"
`

// WriteLauncher generates the shell launcher under scripts/. The daemon
// itself writes the PID file once it is running.
func WriteLauncher(baseDir string) (string, error) {
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}
	path := filepath.Join(baseDir, PathLauncher)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", NewError(ErrorKindInternal, "SCHED_001", "create scripts dir", err)
	}
	script := fmt.Sprintf(launcherTemplate, exe)
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		return "", NewError(ErrorKindInternal, "SCHED_001", "write launcher", err)
	}
	return path, nil
}

// StartAutomation writes the launcher and spawns the daemon process.
func StartAutomation(baseDir string) error {
	if pid, running := daemonPID(baseDir); running {
		return NewValidationError("SCHED_002", fmt.Sprintf("automation already running (pid %d)", pid))
	}

	launcher, err := WriteLauncher(baseDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filepath.Join(baseDir, PathLogs)), 0755); err != nil {
		return NewError(ErrorKindInternal, "SCHED_001", "create logs dir", err)
	}

	cmd := exec.Command("/bin/bash", launcher)
	if err := cmd.Start(); err != nil {
		return NewError(ErrorKindInternal, "SCHED_002", "launch daemon", err)
	}
	return cmd.Wait()
}

// StopAutomation signals the daemon named in the PID file to exit.
func StopAutomation(baseDir string) error {
	pid, running := daemonPID(baseDir)
	if !running {
		return NewNotFoundError("SCHED_002", "automation is not running")
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return NewNotFoundError("SCHED_002", fmt.Sprintf("process %d not found", pid))
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return NewError(ErrorKindInternal, "SCHED_002", fmt.Sprintf("signal pid %d", pid), err)
	}
	GetLogger().Info("Sent SIGTERM to automation daemon (pid %d)", pid)
	return nil
}

// WritePIDFile records the current process id for StopAutomation.
func WritePIDFile(baseDir string) error {
	path := filepath.Join(baseDir, PathPIDFile)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return NewError(ErrorKindInternal, "SCHED_001", "create scripts dir", err)
	}
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0644)
}

// RemovePIDFile clears the PID file on shutdown.
func RemovePIDFile(baseDir string) {
	if err := os.Remove(filepath.Join(baseDir, PathPIDFile)); err != nil && !os.IsNotExist(err) {
		GetLogger().Warning("Could not remove pid file: %v", err)
	}
}

// daemonPID reads the PID file and checks whether the process is alive.
// A stale file is removed.
func daemonPID(baseDir string) (int, bool) {
	path := filepath.Join(baseDir, PathPIDFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		os.Remove(path)
		return 0, false
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		os.Remove(path)
		return 0, false
	}
	if err := proc.Signal(syscall.Signal(0)); err != nil {
		os.Remove(path)
		return 0, false
	}
	return pid, true
}
