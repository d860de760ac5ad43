package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/micropost/micropost-go/cmd/cli/config"
	"github.com/micropost/micropost-go/cmd/cli/root"
	"github.com/spf13/cobra"
)

func init() {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Register, login and inspect the current account",
	}

	authCmd.AddCommand(registerCmd(), loginCmd(), logoutCmd(), meCmd())
	root.GetRoot().AddCommand(authCmd)
}

func registerCmd() *cobra.Command {
	var name, email, password, bio string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		Long:  "Register a new account and store the returned JWT token locally.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" || email == "" || password == "" {
				return fmt.Errorf("--name, --email and --password are required")
			}

			payload := map[string]string{
				"name":     name,
				"email":    email,
				"password": password,
			}
			if bio != "" {
				payload["bio"] = bio
			}

			var out struct {
				Token string `json:"token"`
			}
			if err := postJSON("/api/auth/register", payload, &out); err != nil {
				return fmt.Errorf("failed to register: %w", err)
			}
			if out.Token == "" {
				return fmt.Errorf("registration succeeded but no token returned")
			}
			if err := config.SaveToken(out.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Println("Registered and logged in. Token stored locally.")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.Flags().StringVar(&bio, "bio", "", "Profile bio (optional)")

	return cmd
}

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the Micropost API",
		Long:  "Authenticate and store a JWT token for subsequent CLI commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return fmt.Errorf("--email and --password are required")
			}

			var out struct {
				Token string `json:"token"`
			}
			if err := postJSON("/api/auth/login", map[string]string{"email": email, "password": password}, &out); err != nil {
				return fmt.Errorf("failed to login: %w", err)
			}
			if out.Token == "" {
				return fmt.Errorf("login succeeded but no token returned")
			}
			if err := config.SaveToken(out.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Println("Login successful. Token stored locally.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the locally stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ClearToken(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func meCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the account the stored token belongs to",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.LoadToken()
			if err != nil {
				return fmt.Errorf("not logged in: %w", err)
			}

			req, err := http.NewRequest("GET", config.APIURL()+"/api/auth/me", nil)
			if err != nil {
				return err
			}
			req.Header.Set("x-auth-token", token)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
			}

			var user struct {
				ID    int    `json:"id"`
				Name  string `json:"name"`
				Email string `json:"email"`
				Bio   string `json:"bio"`
			}
			if err := json.Unmarshal(body, &user); err != nil {
				return err
			}

			fmt.Printf("#%d %s <%s>\n%s\n", user.ID, user.Name, user.Email, user.Bio)
			return nil
		},
	}
}

func postJSON(path string, payload interface{}, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := http.Post(config.APIURL()+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return err
		}
	}

	return nil
}
