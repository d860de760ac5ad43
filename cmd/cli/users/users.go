package users

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/micropost/micropost-go/cmd/cli/config"
	"github.com/micropost/micropost-go/cmd/cli/output"
	"github.com/micropost/micropost-go/cmd/cli/root"
	"github.com/spf13/cobra"
)

func init() {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Look up public user profiles and their posts",
	}

	usersCmd.AddCommand(showCmd(), postsCmd())
	root.GetRoot().AddCommand(usersCmd)
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a user's public profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := get("/api/users/" + args[0])
			if err != nil {
				return err
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

func postsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "posts <id>",
		Short: "List a user's posts, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := get("/api/users/" + args[0] + "/posts")
			if err != nil {
				return err
			}

			var posts []struct {
				ID        int       `json:"id"`
				Content   string    `json:"content"`
				CreatedAt time.Time `json:"createdAt"`
				Author    struct {
					Name string `json:"name"`
				} `json:"author"`
			}
			if err := json.Unmarshal(body, &posts); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(posts))
			for _, p := range posts {
				rows = append(rows, []interface{}{
					p.ID,
					p.Author.Name,
					p.Content,
					p.CreatedAt.Format(time.RFC3339),
				})
			}
			output.RenderTable([]string{"ID", "Author", "Content", "Created"}, rows)
			return nil
		},
	}
}

func get(path string) ([]byte, error) {
	resp, err := http.Get(config.APIURL() + path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
