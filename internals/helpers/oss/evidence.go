// file: internals/helpers/oss/evidence.go
package oss

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"mime/multipart"
	"os"
	"time"

	alioss "github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

/* ======================================================
   Upload bukti bayar (slip transfer) ke OSS.
   Gambar di-resize + re-encode ke webp dulu supaya hemat
   storage; hasilnya URL publik yang disimpan sebagai
   evidence reference di payment transaction.
====================================================== */

const (
	maxEvidenceWidth = 1280
	webpQuality      = 80
)

type Client struct {
	bucket  *alioss.Bucket
	baseURL string
}

// NewClientFromEnv membaca OSS_ENDPOINT / OSS_KEY_ID / OSS_KEY_SECRET /
// OSS_BUCKET. Return nil kalau belum dikonfigurasi (upload bukti jadi
// fitur opsional; payment tetap bisa dicatat tanpa slip).
func NewClientFromEnv() (*Client, error) {
	endpoint := os.Getenv("OSS_ENDPOINT")
	keyID := os.Getenv("OSS_KEY_ID")
	keySecret := os.Getenv("OSS_KEY_SECRET")
	bucketName := os.Getenv("OSS_BUCKET")
	if endpoint == "" || keyID == "" || keySecret == "" || bucketName == "" {
		return nil, nil
	}
	cli, err := alioss.New(endpoint, keyID, keySecret)
	if err != nil {
		return nil, fmt.Errorf("oss client: %w", err)
	}
	bucket, err := cli.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("oss bucket: %w", err)
	}
	return &Client{
		bucket:  bucket,
		baseURL: fmt.Sprintf("https://%s.%s", bucketName, endpoint),
	}, nil
}

// UploadEvidence menerima file gambar multipart, re-encode ke webp,
// upload, dan return URL publiknya.
func (cl *Client) UploadEvidence(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open evidence file: %w", err)
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return "", fmt.Errorf("decode evidence image: %w", err)
	}
	if img.Bounds().Dx() > maxEvidenceWidth {
		img = imaging.Resize(img, maxEvidenceWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	key := fmt.Sprintf("payment-evidence/%s/%s.webp",
		time.Now().Format("2006/01"), uuid.New().String())
	if err := cl.bucket.PutObject(key, bytes.NewReader(buf.Bytes()),
		alioss.ContentType("image/webp")); err != nil {
		return "", fmt.Errorf("put evidence object: %w", err)
	}
	return cl.baseURL + "/" + key, nil
}
