package cbr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/credit-simulator/internal/config"
)

// KeyRate is the central bank key rate published for a date.
type KeyRate struct {
	Date time.Time       `json:"fecha"`
	Rate decimal.Decimal `json:"tasa"`
}

// CBRClient fetches the reference key rate from the Central Bank of Russia
// DailyInfo SOAP service.
type CBRClient struct {
	url    string
	client *http.Client
	log    *logrus.Logger
	now    func() time.Time
}

// NewCBRClient initializes a new CBR client
func NewCBRClient(cfg *config.Config, log *logrus.Logger) *CBRClient {
	return &CBRClient{
		url: cfg.CBRURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
		now: time.Now,
	}
}

// buildSOAPRequest asks for the key rates of the last 30 days.
func (c *CBRClient) buildSOAPRequest() string {
	to := c.now()
	from := to.AddDate(0, 0, -30)
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<soap12:Envelope xmlns:soap12="http://www.w3.org/2003/05/soap-envelope">
	<soap12:Body>
		<KeyRate xmlns="http://web.cbr.ru/">
			<fromDate>%s</fromDate>
			<ToDate>%s</ToDate>
		</KeyRate>
	</soap12:Body>
</soap12:Envelope>`, from.Format("2006-01-02"), to.Format("2006-01-02"))
}

func (c *CBRClient) sendRequest(ctx context.Context, soapRequest string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBufferString(soapRequest))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/soap+xml; charset=utf-8")
	req.Header.Set("SOAPAction", "http://web.cbr.ru/KeyRate")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	c.log.Debugf("CBR XML response: %s", string(body))
	return body, nil
}

// parseXMLResponse returns the most recent rate in the diffgram. The service
// lists rates newest first.
func parseXMLResponse(rawBody []byte) (*KeyRate, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	krElements := doc.FindElements("//diffgram/KeyRate/KR")
	if len(krElements) == 0 {
		return nil, fmt.Errorf("no key rate data found in XML")
	}
	latest := krElements[0]

	rateElement := latest.FindElement("./Rate")
	if rateElement == nil {
		return nil, fmt.Errorf("rate element not found in XML")
	}
	rate, err := decimal.NewFromString(strings.TrimSpace(rateElement.Text()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rate %q: %w", rateElement.Text(), err)
	}

	kr := &KeyRate{Rate: rate}
	if dt := latest.FindElement("./DT"); dt != nil {
		if d, err := time.Parse(time.RFC3339, strings.TrimSpace(dt.Text())); err == nil {
			kr.Date = d
		}
	}
	return kr, nil
}

// GetKeyRate retrieves the latest published key rate. It is a reference
// value only and is never applied to stored rates.
func (c *CBRClient) GetKeyRate(ctx context.Context) (*KeyRate, error) {
	body, err := c.sendRequest(ctx, c.buildSOAPRequest())
	if err != nil {
		return nil, err
	}
	kr, err := parseXMLResponse(body)
	if err != nil {
		return nil, err
	}
	c.log.Infof("Retrieved key rate: %s%%", kr.Rate.String())
	return kr, nil
}
