package preview

// ClientScript is injected into the preview page. It replaces the
// container's content on every render message and forwards delegated
// events as element-index paths.
const ClientScript = `
<script>
(function() {
    'use strict';

    var container = document.getElementById(%q);
    var events = %s;
    var reconnectDelay = 1000;
    var maxReconnectDelay = 30000;
    var ws = null;

    function pathTo(el) {
        var path = [];
        while (el && el !== container) {
            var parent = el.parentElement;
            if (!parent) {
                return null;
            }
            path.unshift(Array.prototype.indexOf.call(parent.children, el));
            el = parent;
        }
        return el === container ? path : null;
    }

    function send(e) {
        if (!ws || ws.readyState !== WebSocket.OPEN) {
            return;
        }
        var target = e.target.nodeType === 1 ? e.target : e.target.parentElement;
        var path = pathTo(target);
        if (path === null) {
            return;
        }
        var data = {};
        if (e.key !== undefined) {
            data.key = e.key;
        }
        if (target.value !== undefined) {
            data.value = String(target.value);
        }
        if (e.type === 'submit') {
            e.preventDefault();
        }
        ws.send(JSON.stringify({type: e.type, target: path, data: data}));
    }

    events.forEach(function(type) {
        container.addEventListener(type, send);
    });

    function showError(msg) {
        var overlay = document.getElementById('vtree-error');
        if (!overlay) {
            overlay = document.createElement('pre');
            overlay.id = 'vtree-error';
            overlay.style.cssText = 'position:fixed;bottom:0;left:0;right:0;margin:0;padding:12px;background:#1a1a1a;color:#ff5555;font-family:monospace;white-space:pre-wrap;z-index:999999;';
            document.body.appendChild(overlay);
        }
        overlay.textContent = msg;
    }

    function clearError() {
        var overlay = document.getElementById('vtree-error');
        if (overlay) {
            overlay.remove();
        }
    }

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        ws = new WebSocket(protocol + '//' + location.host + '/_vtree/ws');

        ws.onopen = function() {
            reconnectDelay = 1000;
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }
            switch (msg.type) {
                case 'render':
                    container.innerHTML = msg.html || '';
                    clearError();
                    (msg.diagnostics || []).forEach(function(d) {
                        console.warn('[vtree]', d);
                    });
                    break;
                case 'error':
                    showError(msg.error);
                    break;
            }
        };

        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, maxReconnectDelay);
                connect();
            }, reconnectDelay);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    connect();
})();
</script>
`
