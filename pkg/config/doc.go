// Package config loads apiman configuration from environment variables.
//
// Every setting has a default; command line flags override what is loaded
// here.
//
// Rendering:
//
//	APIMAN_TITLE="API"            # Markdown title line
//	APIMAN_CODE_LANG=""           # fence language for signatures and examples
//	APIMAN_MAN_SECTION="3"
//	APIMAN_MAN_DIR="man/man3"     # defaults to man/man<section>
//	APIMAN_PAGE_PREFIX=""         # e.g. "tomo-"
//	APIMAN_MAN_SOURCE="API man-pages"
//	APIMAN_LIBRARY="API Reference"
//	APIMAN_COPYRIGHT=""
//
// Output:
//
//	APIMAN_SINK="filesystem"      # filesystem or s3
//	APIMAN_S3_BUCKET="docs"
//	APIMAN_S3_ENDPOINT="http://localhost:9000"
//	APIMAN_S3_USE_PATH_STYLE="true"
//	APIMAN_CACHE_SIZE="1024"      # 0 disables the digest cache
//	APIMAN_CACHE_TTL="10m"
//
// Runtime:
//
//	APIMAN_LOG_LEVEL="info"
//	APIMAN_ADDR=":8080"
//	APIMAN_OTEL_ENABLED="false"
//	APIMAN_OTEL_ENDPOINT="localhost:4317"
//
// Usage:
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		return err
//	}
package config
