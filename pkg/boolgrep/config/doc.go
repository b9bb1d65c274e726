/*
Package config loads boolgrep search settings from YAML or JSON.

# File Format

	boolean_operators: true
	search_type: regex          # plaintext | regex
	case_sensitive: false
	whole_word: true
	workers: 8
	document_timeout: 30s       # or a number of seconds
	max_matches: 1000
	stop_after_first_match: false
	open_retries: 2             # retries for EMFILE, EBUSY, timeouts
	include: ["*.log", "*.txt"]
	exclude: ["*.bak"]
	database: results.db

Keys that are missing keep their Default() values. Unknown keys are an
error so typos are caught early.

# File Loading

	cfg, err := config.FromFile("boolgrep.yaml")
	if err != nil {
	    log.Fatal(err)
	}

	// Or load from bytes
	cfg, err = config.FromYAML(yamlBytes)
	cfg, err = config.FromJSON(jsonBytes)
*/
package config
