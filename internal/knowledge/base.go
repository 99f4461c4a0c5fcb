// ABOUTME: Static domain knowledge base for query expansion and clarification
// ABOUTME: Maps abbreviations to synonyms and canonical context records
package knowledge

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// TermContext is the structured record attached to a canonical term.
type TermContext struct {
	Process      string   `yaml:"process"`
	Area         string   `yaml:"area"`
	FullName     string   `yaml:"full_name"`
	RelatedTerms []string `yaml:"related_terms"`
}

// Base holds the term/synonym mapping used to expand queries before
// embedding. The built-in mapping covers the Hadoop documentation domain;
// Load replaces it from a YAML file.
type Base struct {
	Terms    map[string][]string    `yaml:"terms"`
	Contexts map[string]TermContext `yaml:"contexts"`
}

// NewDefault returns the built-in knowledge base.
func NewDefault() *Base {
	return &Base{
		Terms: map[string][]string{
			"hdfs":      {"hadoop distributed file system", "хадуп файловая система", "распределенная фс"},
			"namenode":  {"нейм нода", "name node", "мастер нода"},
			"datanode":  {"дата нода", "data node", "рабочая нода"},
			"mapreduce": {"мапредьюс", "map reduce", "мап редьюс", "распределенные вычисления"},
			"hadoop":    {"хадуп", "apache hadoop", "hadoop framework"},
			"wordcount": {"подсчет слов", "word count", "пример mapreduce"},
		},
		Contexts: map[string]TermContext{
			"hdfs": {
				Process:      "storage",
				Area:         "distributed_fs",
				FullName:     "Hadoop Distributed File System - распределенная файловая система",
				RelatedTerms: []string{"блоки данных", "репликация", "namenode", "datanode"},
			},
			"mapreduce": {
				Process:      "processing",
				Area:         "distributed_computing",
				FullName:     "MapReduce - модель распределенных вычислений",
				RelatedTerms: []string{"mapper", "reducer", "wordcount", "distributed processing"},
			},
			"hadoop": {
				Process:      "big_data",
				Area:         "framework",
				FullName:     "Apache Hadoop - фреймворк для распределенной обработки",
				RelatedTerms: []string{"hdfs", "mapreduce", "yarn", "distributed computing"},
			},
		},
	}
}

// Load reads a knowledge base from a YAML file, replacing the built-in
// mapping entirely.
func Load(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading knowledge base: %w", err)
	}
	var b Base
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parsing knowledge base: %w", err)
	}
	if len(b.Terms) == 0 {
		return nil, fmt.Errorf("knowledge base %s defines no terms", path)
	}
	if b.Contexts == nil {
		b.Contexts = map[string]TermContext{}
	}
	return &b, nil
}

// ExpandQuery appends synonym phrases and canonical context fields for
// every mapping key found in the lowercased query. Expansion runs a single
// pass over the original query only; expanded terms are never re-matched.
func (b *Base) ExpandQuery(query string) string {
	lower := strings.ToLower(query)
	expanded := []string{query}

	for _, term := range b.sortedTerms() {
		if !strings.Contains(lower, term) {
			continue
		}
		expanded = append(expanded, b.Terms[term]...)
		if ctx, ok := b.Contexts[term]; ok {
			expanded = append(expanded, ctx.Process, ctx.Area, ctx.FullName)
			expanded = append(expanded, ctx.RelatedTerms...)
		}
	}
	return strings.Join(expanded, " ")
}

// Canonical returns the canonical full name for a knowledge-base term
// found in the query, or "" when nothing matches. When several terms match,
// the last one (in sorted key order) wins. Used to rewrite vague queries
// before clarification retrieval.
func (b *Base) Canonical(query string) string {
	lower := strings.ToLower(query)
	full := ""
	for _, term := range b.sortedTerms() {
		if strings.Contains(lower, term) {
			if ctx, ok := b.Contexts[term]; ok {
				full = ctx.FullName
			}
		}
	}
	return full
}

// Related returns the related terms for every knowledge-base term found in
// the query.
func (b *Base) Related(query string) []string {
	lower := strings.ToLower(query)
	var related []string
	for _, term := range b.sortedTerms() {
		if strings.Contains(lower, term) {
			if ctx, ok := b.Contexts[term]; ok {
				related = append(related, ctx.RelatedTerms...)
			}
		}
	}
	return related
}

// sortedTerms returns mapping keys in stable order so that expansion output
// does not depend on map iteration.
func (b *Base) sortedTerms() []string {
	terms := make([]string, 0, len(b.Terms))
	for term := range b.Terms {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
