package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/JS2IIU-MH/agent-skills/internal/httputil"
	"github.com/JS2IIU-MH/agent-skills/internal/search"
	"github.com/JS2IIU-MH/agent-skills/internal/websearch"
	"github.com/JS2IIU-MH/agent-skills/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search literature APIs and print unified JSON records",
	Long: `Search queries one literature provider (arXiv, PubMed, J-STAGE) or a web
search engine and prints the results as a JSON array of unified records.
Provider failures print {"error": "..."} instead of failing the process.`,
}

var searchArxivCmd = &cobra.Command{
	Use:   "arxiv QUERY",
	Short: "Search arXiv preprints",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := searchConfig(cmd)
		p := &search.ArxivProvider{Client: httputil.NewClient(cfg.Timeout)}
		return emitRecords(cmd, p, args[0], cfg)
	},
}

var searchPubmedCmd = &cobra.Command{
	Use:   "pubmed QUERY",
	Short: "Search PubMed via NCBI Entrez",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := searchConfig(cmd)
		email, _ := cmd.Flags().GetString("email")
		if email == "" {
			email = viper.GetString("pubmed.email")
		}
		cfg.Email = secretDefault("ncbi-email", email)
		cfg.NCBIAPIKey = secretDefault("ncbi-api-key", "")

		p := &search.PubMedProvider{Client: httputil.NewClient(cfg.Timeout)}
		return emitRecords(cmd, p, args[0], cfg)
	},
}

var searchJstageCmd = &cobra.Command{
	Use:   "jstage QUERY",
	Short: "Search J-STAGE via its OpenSearch API",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := searchConfig(cmd)
		p := &search.JStageProvider{Client: httputil.NewClient(cfg.Timeout)}
		return emitRecords(cmd, p, args[0], cfg)
	},
}

var searchWebCmd = &cobra.Command{
	Use:   "web QUERY",
	Short: "Search the web via the DuckDuckGo HTML endpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := searchConfig(cmd)
		d := &websearch.DuckDuckGo{Client: httputil.NewClient(cfg.Timeout), UserAgent: cfg.UserAgent}
		results, err := d.Search(cmd.Context(), args[0], cfg.MaxResults)
		if err != nil {
			return search.WriteError(os.Stdout, err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	},
}

func init() {
	searchCmd.PersistentFlags().Int("max-results", 0, "maximum number of results to return (default 10)")
	searchCmd.PersistentFlags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	searchPubmedCmd.Flags().String("email", "", "email identifying the caller to NCBI Entrez")

	searchCmd.AddCommand(searchArxivCmd)
	searchCmd.AddCommand(searchPubmedCmd)
	searchCmd.AddCommand(searchJstageCmd)
	searchCmd.AddCommand(searchWebCmd)
	rootCmd.AddCommand(searchCmd)
}

// searchConfig merges flag, config-file and default settings.
func searchConfig(cmd *cobra.Command) types.SearchConfig {
	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults <= 0 {
		maxResults = viper.GetInt("search.max_results")
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("search.timeout")
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: viper.GetString("search.user_agent"),
		},
		MaxResults: maxResults,
	}
}

// emitRecords runs a provider query and prints either the record array or
// an error payload, always on stdout and always with exit status 0.
func emitRecords(cmd *cobra.Command, p search.Provider, query string, cfg types.SearchConfig) error {
	records, err := p.Search(cmd.Context(), query, cfg)
	if err != nil {
		return search.WriteError(os.Stdout, err)
	}
	return search.WriteJSON(os.Stdout, records)
}
