package notification

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSPublisher is the part of *sns.Client the announcer needs.
type SNSPublisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSAnnouncer publishes every new notification to a topic, typically wired to the
// operator's phone.
type SNSAnnouncer struct {
	client   SNSPublisher
	topicARN string
}

func NewSNSAnnouncer(client SNSPublisher, topicARN string) *SNSAnnouncer {
	return &SNSAnnouncer{client: client, topicARN: topicARN}
}

// NewSNSAnnouncerFromRegion loads the default AWS credential chain.
func NewSNSAnnouncerFromRegion(ctx context.Context, region, topicARN string) (*SNSAnnouncer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return NewSNSAnnouncer(sns.NewFromConfig(cfg), topicARN), nil
}

func (a *SNSAnnouncer) Announce(ctx context.Context, n Notification) error {
	_, err := a.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(a.topicARN),
		Subject:  aws.String(n.Title),
		Message:  aws.String(n.Message),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"type": {DataType: aws.String("String"), StringValue: aws.String(n.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}
