package posts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/micropost/micropost-go/cmd/cli/config"
	"github.com/micropost/micropost-go/cmd/cli/output"
	"github.com/micropost/micropost-go/cmd/cli/root"
	"github.com/spf13/cobra"
)

type post struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Author    struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"author"`
}

func init() {
	postsCmd := &cobra.Command{
		Use:   "posts",
		Short: "Create posts and read the public feed",
	}

	postsCmd.AddCommand(createCmd(), feedCmd())
	root.GetRoot().AddCommand(postsCmd)
}

func createCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <content>",
		Short: "Create a post as the logged-in user",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.LoadToken()
			if err != nil {
				return fmt.Errorf("not logged in: %w", err)
			}

			content := strings.Join(args, " ")
			payload, err := json.Marshal(map[string]string{"content": content})
			if err != nil {
				return err
			}

			req, err := http.NewRequest("POST", config.APIURL()+"/api/posts", bytes.NewReader(payload))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")
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

			var p post
			if err := json.Unmarshal(body, &p); err != nil {
				return err
			}

			fmt.Printf("Posted #%d as %s\n", p.ID, p.Author.Name)
			return nil
		},
	}
}

func feedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "feed",
		Short: "Show the public feed, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := http.Get(config.APIURL() + "/api/posts")
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
			}

			var feed []post
			if err := json.Unmarshal(body, &feed); err != nil {
				return err
			}

			renderFeed(feed)
			return nil
		},
	}
}

func renderFeed(feed []post) {
	rows := make([][]interface{}, 0, len(feed))
	for _, p := range feed {
		rows = append(rows, []interface{}{
			p.ID,
			p.Author.Name,
			p.Content,
			p.CreatedAt.Format(time.RFC3339),
		})
	}
	output.RenderTable([]string{"ID", "Author", "Content", "Created"}, rows)
}
