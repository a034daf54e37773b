package reporters

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// loadAWSConfig resolves the SDK config for a reporter, honoring static
// credentials when both keys are set.
func loadAWSConfig(ctx context.Context, c AWSConfig) (aws.Config, error) {
	opts := []func(*awscfg.LoadOptions) error{awscfg.WithRegion(c.Region)}
	if c.AccessKeyID != "" && c.SecretAccessKey != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, ""),
		))
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}

// endpointOverride returns c.EndpointURL as an SDK base endpoint, or nil.
func endpointOverride(c AWSConfig) *string {
	if c.EndpointURL == "" {
		return nil
	}
	return aws.String(c.EndpointURL)
}

// eventAttributes are the string attributes attached to queue and topic messages.
func eventAttributes(evt Event) map[string]string {
	return map[string]string{
		"method": evt.Method,
		"ok":     strconv.FormatBool(evt.OK),
	}
}
