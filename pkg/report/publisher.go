package report

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/IgorEulalio/nmap-preflight/pkg/logging"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	k8s "k8s.io/client-go/kubernetes"
)

const managedByLabel = "app.kubernetes.io/managed-by"

var invalidKeyChars = regexp.MustCompile(`[^-._a-zA-Z0-9]`)

// Publisher writes reports into a ConfigMap, one key per host.
type Publisher struct {
	client    k8s.Interface
	namespace string
	name      string
}

func NewPublisher(client k8s.Interface, namespace, name string) *Publisher {
	return &Publisher{client: client, namespace: namespace, name: name}
}

func (p *Publisher) Publish(ctx context.Context, r Report) error {
	logger := logging.Logger()

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("error marshaling report for %s: %w", r.Host, err)
	}
	k := ConfigMapKey(r.Host)

	configMaps := p.client.CoreV1().ConfigMaps(p.namespace)
	cm, err := configMaps.Get(ctx, p.name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		cm = &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{
				Name:      p.name,
				Namespace: p.namespace,
				Labels:    map[string]string{managedByLabel: "nmap-preflight"},
			},
			Data: map[string]string{k: string(data)},
		}
		if _, err := configMaps.Create(ctx, cm, metav1.CreateOptions{}); err != nil {
			return fmt.Errorf("failed to create configmap %s/%s: %w", p.namespace, p.name, err)
		}
		logger.Debug().Msgf("created configmap %s/%s with report for %s", p.namespace, p.name, r.Host)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get configmap %s/%s: %w", p.namespace, p.name, err)
	}

	if cm.Data == nil {
		cm.Data = map[string]string{}
	}
	cm.Data[k] = string(data)
	if _, err := configMaps.Update(ctx, cm, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("failed to update configmap %s/%s: %w", p.namespace, p.name, err)
	}
	logger.Debug().Msgf("updated configmap %s/%s with report for %s", p.namespace, p.name, r.Host)
	return nil
}

// ConfigMapKey maps a hostname onto the characters a ConfigMap key allows.
func ConfigMapKey(host string) string {
	k := invalidKeyChars.ReplaceAllString(host, "-")
	if k == "" || k == "." || k == ".." {
		return "unknown"
	}
	return k
}
