package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var phone, code, name, mode string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with a one-time code sent to your phone",
		Example: `  planctl login --phone 9876543210
  planctl login --phone 9876543210 --mode signup --name Ravi`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			c := app.client()
			echoed, err := c.SendOTP(ctx, phone, mode)
			if err != nil {
				return fmt.Errorf("send otp: %w", err)
			}
			if code == "" {
				code = echoed
			}
			if code == "" {
				fmt.Fprint(app.Out, "OTP: ")
				line, err := bufio.NewReader(app.In).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read otp: %w", err)
				}
				code = strings.TrimSpace(line)
			}
			tok, err := c.VerifyOTP(ctx, phone, code, name, mode)
			if err != nil {
				return fmt.Errorf("verify otp: %w", err)
			}
			if err := app.saveToken(tok); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			fmt.Fprintln(app.Out, "Logged in.")
			return nil
		},
	}
	cmd.Flags().StringVar(&phone, "phone", "", "10-digit mobile number")
	cmd.Flags().StringVar(&code, "otp", "", "code received by SMS (prompted when empty)")
	cmd.Flags().StringVar(&name, "name", "", "farmer name for signup")
	cmd.Flags().StringVar(&mode, "mode", "login", "login or signup")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}
