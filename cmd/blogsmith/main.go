package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"blogsmith/internal/ai"
	"blogsmith/internal/blog"
	"blogsmith/internal/config"
	"blogsmith/internal/editor"
	"blogsmith/internal/logger"
	"blogsmith/internal/server"
	"blogsmith/internal/store"
)

var (
	rootCmd = &cobra.Command{
		Use:   "blogsmith",
		Short: "AI-assisted blog drafting with targeted content editing",
	}
	dbPath  string
	cfgPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Path to the blog database (SQLite), overrides config")
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(revisionsCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
}

func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		// Missing config.yaml is fine; defaults plus env cover local runs.
		cfg = config.Default()
	}
	if dbPath != "" {
		cfg.DB.Path = dbPath
	}
	return cfg
}

type appDeps struct {
	svc   *blog.Service
	store *store.SQLiteStore
	cfg   *config.Config
	log   *logger.Logger
}

// initService wires store, model client, rewriter and service from config.
func initService(ctx context.Context) (*appDeps, error) {
	cfg := loadConfig()

	st, err := store.NewSQLiteStore(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	completer, err := ai.NewCompleter(ctx, ai.Options{
		Provider:    cfg.AI.Provider,
		Model:       cfg.AI.Model,
		APIKey:      cfg.AI.APIKey,
		BaseURL:     cfg.AI.BaseURL,
		Temperature: cfg.AI.Temperature,
		Timeout:     cfg.Timeout(),
	})
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to create ai client: %w", err)
	}

	zlog, err := logger.New(cfg.Server.Mode)
	if err != nil {
		st.Close()
		return nil, err
	}

	rw := editor.NewRewriter(completer, cfg.Editor.ContextWindow, cfg.Timeout())
	return &appDeps{
		svc:   blog.NewService(st, rw, zlog),
		store: st,
		cfg:   cfg,
		log:   zlog,
	}, nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		deps, err := initService(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		defer deps.store.Close()
		defer deps.log.Sync()

		fmt.Printf("🚀 Listening on %s (db: %s)\n", deps.cfg.Server.Addr, deps.cfg.DB.Path)
		if err := server.New(deps.svc, deps.log).Run(deps.cfg.Server.Addr); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	},
}

var (
	createPrompt string
	createAuthor string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Generate a new draft from a topic prompt",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		deps, err := initService(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		defer deps.store.Close()

		fmt.Println("✍️  Generating draft...")
		b, err := deps.svc.CreateFromPrompt(ctx, blog.CreateInput{Prompt: createPrompt, Author: createAuthor})
		if err != nil {
			if b != nil {
				log.Fatalf("Generation failed (blog %s saved in error state): %v", b.ID, err)
			}
			log.Fatalf("Generation failed: %v", err)
		}
		fmt.Printf("✅ Draft %s created (%d chars).\n\n%s\n", b.ID, len(b.Content), b.Content)
	},
}

var (
	editID   string
	editWhat string
	editHow  string
	editUser string
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Rewrite one passage of a draft, located by a descriptor",
	Long: `Locates the passage described by --what (an exact phrase, a case-insensitive
phrase, or 'starts with "..." ends with "..."') and rewrites only that span
according to --how. Everything outside the located span is untouched.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		deps, err := initService(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		defer deps.store.Close()

		fmt.Println("🔍 Locating target passage...")
		b, err := deps.svc.ApplyTargetedEdit(ctx, editID, editUser, editWhat, editHow)
		if err != nil {
			switch blog.CodeOf(err) {
			case blog.CodeTargetNotFound, blog.CodeValidation:
				fmt.Println(err)
				os.Exit(1)
			default:
				log.Fatalf("Edit failed: %v", err)
			}
		}
		fmt.Printf("✅ Blog %s updated.\n\n%s\n", b.ID, b.Content)
	},
}

var publishID string

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Mark a draft as published",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		deps, err := initService(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		defer deps.store.Close()

		b, err := deps.svc.SetStatus(ctx, publishID, store.StatusPublished)
		if err != nil {
			log.Fatalf("Publish failed: %v", err)
		}
		fmt.Printf("📣 Blog %s published at %s.\n", b.ID, b.PublishedAt.Format("2006-01-02 15:04:05"))
	},
}

var revisionsID string

var revisionsCmd = &cobra.Command{
	Use:   "revisions",
	Short: "Show the edit history of a blog",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		deps, err := initService(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		defer deps.store.Close()

		revs, err := deps.svc.Revisions(ctx, revisionsID)
		if err != nil {
			log.Fatalf("Failed to list revisions: %v", err)
		}
		if len(revs) == 0 {
			fmt.Println("No revisions yet.")
			return
		}
		for _, r := range revs {
			fmt.Printf("%s  what: %q  how: %q\n", r.CreatedAt.Format("2006-01-02 15:04:05"), r.What, r.How)
		}
	},
}

var getID string

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Print a blog's content",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		deps, err := initService(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		defer deps.store.Close()

		b, err := deps.svc.Get(ctx, getID)
		if err != nil {
			log.Fatalf("Failed to load blog: %v", err)
		}
		fmt.Printf("Status: %s\n", b.Status)
		if b.ErrorMessage != "" {
			fmt.Printf("Error: %s\n", b.ErrorMessage)
		}
		fmt.Printf("\n%s\n", b.Content)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all blogs",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		deps, err := initService(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		defer deps.store.Close()

		blogs, err := deps.svc.List(ctx)
		if err != nil {
			log.Fatalf("Failed to list blogs: %v", err)
		}
		for _, b := range blogs {
			fmt.Printf("%s  [%s]  %s\n", b.ID, b.Status, b.Prompt)
		}
	},
}

var deleteID string

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a blog and its revision history",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		deps, err := initService(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		defer deps.store.Close()

		if err := deps.svc.Delete(ctx, deleteID); err != nil {
			log.Fatalf("Delete failed: %v", err)
		}
		fmt.Println("🗑️  Deleted.")
	},
}

func init() {
	createCmd.Flags().StringVarP(&createPrompt, "prompt", "p", "", "Topic and guidance for the draft")
	createCmd.Flags().StringVar(&createAuthor, "author", "", "Author display name")
	_ = createCmd.MarkFlagRequired("prompt")

	editCmd.Flags().StringVar(&editID, "id", "", "Blog id")
	editCmd.Flags().StringVar(&editWhat, "what", "", "Which passage to change")
	editCmd.Flags().StringVar(&editHow, "how", "", "How to change it")
	editCmd.Flags().StringVar(&editUser, "user", "", "Acting user id (recorded in the revision)")
	_ = editCmd.MarkFlagRequired("id")
	_ = editCmd.MarkFlagRequired("what")
	_ = editCmd.MarkFlagRequired("how")

	publishCmd.Flags().StringVar(&publishID, "id", "", "Blog id")
	_ = publishCmd.MarkFlagRequired("id")

	revisionsCmd.Flags().StringVar(&revisionsID, "id", "", "Blog id")
	_ = revisionsCmd.MarkFlagRequired("id")

	getCmd.Flags().StringVar(&getID, "id", "", "Blog id")
	_ = getCmd.MarkFlagRequired("id")

	deleteCmd.Flags().StringVar(&deleteID, "id", "", "Blog id")
	_ = deleteCmd.MarkFlagRequired("id")
}
