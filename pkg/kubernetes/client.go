package kubernetes

import (
	"flag"
	"fmt"
	"io"
	"sync"

	"github.com/IgorEulalio/nmap-preflight/pkg/config"
	k8s "k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/klog/v2"
)

type Client struct {
	*k8s.Clientset
	RestConfig *rest.Config
}

var (
	client  *Client
	initErr error
	once    sync.Once
)

// Init builds the shared client from a kubeconfig path, or from the
// in-cluster service account when the path is empty.
func Init(cfg config.KubernetesConfig) error {
	once.Do(func() {
		silenceKlog()

		c := new(Client)
		var err error
		if cfg.KubeConfig != "" {
			c.RestConfig, err = clientcmd.BuildConfigFromFlags("", cfg.KubeConfig)
		} else {
			c.RestConfig, err = rest.InClusterConfig()
		}
		if err != nil {
			initErr = fmt.Errorf("error building kubernetes rest config: %w", err)
			return
		}

		c.Clientset, err = k8s.NewForConfig(c.RestConfig)
		if err != nil {
			initErr = fmt.Errorf("error creating kubernetes clientset: %w", err)
			return
		}
		client = c
	})

	return initErr
}

func GetClient() *Client {
	return client
}

// silenceKlog keeps client-go from writing to stderr behind zerolog's back.
// Its flags live on a private FlagSet so the CLI flags are left alone.
func silenceKlog() {
	fs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fs)
	_ = fs.Set("logtostderr", "false")
	_ = fs.Set("alsologtostderr", "false")
	klog.SetOutput(io.Discard)
}
