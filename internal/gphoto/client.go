package gphoto

import (
	"context"
	"fmt"
)

// AutoDetectArgs returns the arguments for listing connected cameras.
func AutoDetectArgs() []string {
	return []string{"--auto-detect"}
}

// GetConfigArgs returns the arguments for reading one config path.
func GetConfigArgs(path string) []string {
	return []string{"--get-config", path}
}

// SetConfigArgs returns the arguments for writing value to a config path.
func SetConfigArgs(path, value string) []string {
	return []string{"--set-config", fmt.Sprintf("%s=%s", path, value)}
}

// CaptureArgs returns the arguments for a capture that downloads the result
// into the working directory.
func CaptureArgs() []string {
	return []string{"--capture-image-and-download"}
}

// ListFilesArgs returns the arguments for listing files on the camera.
func ListFilesArgs() []string {
	return []string{"--list-files"}
}

// GetAllFilesArgs returns the arguments for downloading every file on the camera.
func GetAllFilesArgs() []string {
	return []string{"--get-all-files"}
}

// ResetArgs returns the arguments for resetting the USB port of the camera.
func ResetArgs() []string {
	return []string{"--reset"}
}

// Client issues the gphoto2 command forms used by tetherctl.
type Client struct {
	runner Runner
}

// NewClient wraps runner.
func NewClient(runner Runner) *Client {
	return &Client{runner: runner}
}

// AutoDetect runs `gphoto2 --auto-detect`.
func (c *Client) AutoDetect(ctx context.Context) (Result, error) {
	return c.runner.Run(ctx, AutoDetectArgs()...)
}

// GetConfig runs `gphoto2 --get-config <path>`.
func (c *Client) GetConfig(ctx context.Context, path string) (Result, error) {
	return c.runner.Run(ctx, GetConfigArgs(path)...)
}

// SetConfig runs `gphoto2 --set-config <path>=<value>`.
func (c *Client) SetConfig(ctx context.Context, path, value string) (Result, error) {
	return c.runner.Run(ctx, SetConfigArgs(path, value)...)
}

// CaptureImageAndDownload runs `gphoto2 --capture-image-and-download`.
func (c *Client) CaptureImageAndDownload(ctx context.Context) (Result, error) {
	return c.runner.Run(ctx, CaptureArgs()...)
}

// ListFiles runs `gphoto2 --list-files`.
func (c *Client) ListFiles(ctx context.Context) (Result, error) {
	return c.runner.Run(ctx, ListFilesArgs()...)
}

// GetAllFiles runs `gphoto2 --get-all-files`.
func (c *Client) GetAllFiles(ctx context.Context) (Result, error) {
	return c.runner.Run(ctx, GetAllFilesArgs()...)
}

// Reset runs `gphoto2 --reset`.
func (c *Client) Reset(ctx context.Context) (Result, error) {
	return c.runner.Run(ctx, ResetArgs()...)
}
