package s3

import (
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/stretchr/testify/assert"
)

func newTestClient(t *testing.T, cfg *aws.Config) *Client {
	sess, err := session.NewSession(cfg)
	assert.NoError(t, err)
	return &Client{s3Client: s3.New(sess), bucket: "images"}
}

func TestObjectURL_AWS(t *testing.T) {
	c := newTestClient(t, &aws.Config{Region: aws.String("eu-west-1")})
	assert.Equal(t, "https://images.s3.eu-west-1.amazonaws.com/listings/1/a.jpg", c.objectURL("listings/1/a.jpg"))
}

func TestObjectURL_MinIO(t *testing.T) {
	c := newTestClient(t, &aws.Config{
		Region:           aws.String("us-east-1"),
		Endpoint:         aws.String("http://localhost:9000"),
		S3ForcePathStyle: aws.Bool(true),
		DisableSSL:       aws.Bool(true),
	})
	assert.Equal(t, "http://localhost:9000/images/listings/1/a.jpg", c.objectURL("listings/1/a.jpg"))
}
